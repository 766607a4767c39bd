package scoring

import "math"

// Engine computes credit scores with a fixed additive rule cascade.
// It holds no state between calls and is safe for concurrent use.
type Engine struct {
	validator *Validator
}

// NewEngine constructs an engine that re-validates every applicant with validator.
func NewEngine(validator *Validator) *Engine {
	return &Engine{validator: validator}
}

// Compute scores a validated applicant.
func (e *Engine) Compute(applicant ApplicantInput) (ScoringResult, error) {
	evaluation, err := e.Evaluate(applicant)
	if err != nil {
		return ScoringResult{}, err
	}
	return evaluation.ScoringResult, nil
}

// Evaluate scores the applicant and reports which rules fired, in cascade order.
func (e *Engine) Evaluate(applicant ApplicantInput) (Evaluation, error) {
	normalized, err := e.validator.Validate(applicant.Raw())
	if err != nil {
		return Evaluation{}, err
	}

	score := float64(BaseScore)
	adjustments := make([]Adjustment, 0, 5)
	apply := func(rule string) {
		delta := ruleDeltas[rule]
		score += float64(delta)
		adjustments = append(adjustments, Adjustment{Rule: rule, Delta: delta})
	}

	switch {
	case normalized.Age < youngAgeLimit:
		apply(RuleAgeUnder25)
	case normalized.Age > seniorAgeLimit:
		apply(RuleAgeOver60)
	}

	switch {
	case normalized.AnnualIncome > incomeTierHigh:
		apply(RuleIncomeOver200k)
	case normalized.AnnualIncome > incomeTierUpper:
		apply(RuleIncomeOver100k)
	case normalized.AnnualIncome > incomeTierMiddle:
		apply(RuleIncomeOver50k)
	}

	if normalized.DebtToIncomeRatio > debtRatioLimit {
		apply(RuleDebtRatioOver40pct)
	}

	if normalized.CreditHistory == CreditHistoryBad {
		apply(RuleBadCreditHistory)
	}

	loanRatio := LoanToIncomeRatio(normalized.LoanAmount, normalized.AnnualIncome)
	switch {
	case loanRatio > loanRatioHigh:
		apply(RuleLoanRatioOver50pct)
	case loanRatio < loanRatioVeryLow:
		apply(RuleLoanRatioUnder10pct)
	case loanRatio < loanRatioLow:
		apply(RuleLoanRatioUnder25pct)
	}

	score = math.Max(MinScore, math.Min(MaxScore, score))
	final := int(math.Round(score))

	return Evaluation{
		ScoringResult: ScoringResult{Score: final, RiskCategory: ClassifyRisk(final)},
		Adjustments:   adjustments,
	}, nil
}

// LoanToIncomeRatio divides the loan by the annual income.
// A zero income yields +Inf so the applicant lands in the highest penalty band.
func LoanToIncomeRatio(loanAmount, annualIncome float64) float64 {
	if annualIncome == 0 {
		return math.Inf(1)
	}
	return loanAmount / annualIncome
}

// ClassifyRisk maps a final score to its risk category.
func ClassifyRisk(score int) RiskCategory {
	switch {
	case score >= lowRiskFloor:
		return RiskLow
	case score >= mediumRiskFloor:
		return RiskMedium
	default:
		return RiskHigh
	}
}
