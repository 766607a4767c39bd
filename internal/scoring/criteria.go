package scoring

// CriteriaInfo describes the scoring rules for display.
type CriteriaInfo struct {
	BaseScore      int                 `json:"baseScore"`
	ScoreRange     ScoreRange          `json:"scoreRange"`
	Adjustments    CriteriaAdjustments `json:"adjustments"`
	RiskBoundaries RiskBoundaries      `json:"riskBoundaries"`
}

// ScoreRange is the inclusive clamp applied to every score.
type ScoreRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// CriteriaAdjustments lists the magnitude of every rule.
type CriteriaAdjustments struct {
	AgeUnder25          int `json:"ageUnder25"`
	AgeOver60           int `json:"ageOver60"`
	IncomeOver200k      int `json:"incomeOver200k"`
	IncomeOver100k      int `json:"incomeOver100k"`
	IncomeOver50k       int `json:"incomeOver50k"`
	DebtRatioOver40pct  int `json:"debtRatioOver40pct"`
	BadCreditHistory    int `json:"badCreditHistory"`
	LoanRatioOver50pct  int `json:"loanRatioOver50pct"`
	LoanRatioUnder10pct int `json:"loanRatioUnder10pct"`
	LoanRatioUnder25pct int `json:"loanRatioUnder25pct"`
}

// RiskBoundaries describes the score band of each risk category.
type RiskBoundaries struct {
	Low    string `json:"low"`
	Medium string `json:"medium"`
	High   string `json:"high"`
}

// DescribeCriteria returns the rule magnitudes the engine applies.
func DescribeCriteria() CriteriaInfo {
	return CriteriaInfo{
		BaseScore:  BaseScore,
		ScoreRange: ScoreRange{Min: MinScore, Max: MaxScore},
		Adjustments: CriteriaAdjustments{
			AgeUnder25:          ruleDeltas[RuleAgeUnder25],
			AgeOver60:           ruleDeltas[RuleAgeOver60],
			IncomeOver200k:      ruleDeltas[RuleIncomeOver200k],
			IncomeOver100k:      ruleDeltas[RuleIncomeOver100k],
			IncomeOver50k:       ruleDeltas[RuleIncomeOver50k],
			DebtRatioOver40pct:  ruleDeltas[RuleDebtRatioOver40pct],
			BadCreditHistory:    ruleDeltas[RuleBadCreditHistory],
			LoanRatioOver50pct:  ruleDeltas[RuleLoanRatioOver50pct],
			LoanRatioUnder10pct: ruleDeltas[RuleLoanRatioUnder10pct],
			LoanRatioUnder25pct: ruleDeltas[RuleLoanRatioUnder25pct],
		},
		RiskBoundaries: RiskBoundaries{
			Low:    lowRiskLabel,
			Medium: mediumRiskLabel,
			High:   highRiskLabel,
		},
	}
}
