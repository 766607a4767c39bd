package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func applicant(age int, income, ratio, loan float64, history CreditHistory) ApplicantInput {
	return ApplicantInput{
		Name:              "Applicant",
		Age:               age,
		AnnualIncome:      income,
		DebtToIncomeRatio: ratio,
		LoanAmount:        loan,
		CreditHistory:     history,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(newTestValidator(t))
}

func TestComputeScenarios(t *testing.T) {
	cases := []struct {
		name     string
		input    ApplicantInput
		score    int
		category RiskCategory
	}{
		{
			name:     "base case lands in neutral loan band",
			input:    applicant(35, 60000, 0.3, 25000, CreditHistoryGood),
			score:    640,
			category: RiskHigh,
		},
		{
			name:     "maximally penalised applicant is clamped",
			input:    applicant(22, 30000, 0.6, 20000, CreditHistoryBad),
			score:    300,
			category: RiskHigh,
		},
		{
			name:     "no income bonus and high loan ratio",
			input:    applicant(35, 45000, 0.3, 25000, CreditHistoryGood),
			score:    550,
			category: RiskHigh,
		},
		{
			name:     "high earner with tiny loan",
			input:    applicant(40, 300000, 0.1, 10000, CreditHistoryGood),
			score:    750,
			category: RiskLow,
		},
		{
			name:     "upper income with low loan ratio",
			input:    applicant(30, 150000, 0.2, 30000, CreditHistoryGood),
			score:    695,
			category: RiskMedium,
		},
		{
			name:     "senior with high debt ratio",
			input:    applicant(65, 80000, 0.5, 10000, CreditHistoryGood),
			score:    545,
			category: RiskHigh,
		},
		{
			name:     "zero income takes loan penalty",
			input:    applicant(30, 0, 0, 1000, CreditHistoryGood),
			score:    550,
			category: RiskHigh,
		},
	}

	engine := newTestEngine(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := engine.Compute(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.score, result.Score)
			require.Equal(t, tc.category, result.RiskCategory)
		})
	}
}

func TestComputeBoundaries(t *testing.T) {
	engine := newTestEngine(t)
	// Neutral baseline: age 30, income 40000, ratio 0.3, loan 12000 (loan ratio 0.3).
	baseline := func() ApplicantInput { return applicant(30, 40000, 0.3, 12000, CreditHistoryGood) }

	cases := []struct {
		name   string
		mutate func(*ApplicantInput)
		score  int
	}{
		{name: "baseline", mutate: func(*ApplicantInput) {}, score: 600},
		{name: "age 24", mutate: func(a *ApplicantInput) { a.Age = 24 }, score: 550},
		{name: "age 25", mutate: func(a *ApplicantInput) { a.Age = 25 }, score: 600},
		{name: "age 60", mutate: func(a *ApplicantInput) { a.Age = 60 }, score: 600},
		{name: "age 61", mutate: func(a *ApplicantInput) { a.Age = 61 }, score: 570},
		{name: "income exactly 50k", mutate: func(a *ApplicantInput) { a.AnnualIncome = 50000; a.LoanAmount = 15000 }, score: 600},
		{name: "income exactly 100k", mutate: func(a *ApplicantInput) { a.AnnualIncome = 100000; a.LoanAmount = 30000 }, score: 640},
		{name: "income exactly 200k", mutate: func(a *ApplicantInput) { a.AnnualIncome = 200000; a.LoanAmount = 60000 }, score: 680},
		{name: "debt ratio exactly 0.4", mutate: func(a *ApplicantInput) { a.DebtToIncomeRatio = 0.4 }, score: 600},
		{name: "debt ratio 0.41", mutate: func(a *ApplicantInput) { a.DebtToIncomeRatio = 0.41 }, score: 520},
		{name: "bad history", mutate: func(a *ApplicantInput) { a.CreditHistory = CreditHistoryBad }, score: 450},
		{name: "loan ratio exactly 0.5", mutate: func(a *ApplicantInput) { a.LoanAmount = 20000 }, score: 600},
		{name: "loan ratio exactly 0.25", mutate: func(a *ApplicantInput) { a.LoanAmount = 10000 }, score: 600},
		{name: "loan ratio exactly 0.1", mutate: func(a *ApplicantInput) { a.LoanAmount = 4000 }, score: 615},
		{name: "loan ratio below 0.1", mutate: func(a *ApplicantInput) { a.LoanAmount = 3999 }, score: 630},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := baseline()
			tc.mutate(&input)
			result, err := engine.Compute(input)
			require.NoError(t, err)
			require.Equal(t, tc.score, result.Score)
		})
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	engine := newTestEngine(t)
	input := applicant(45, 120000, 0.35, 20000, CreditHistoryGood)

	first, err := engine.Compute(input)
	require.NoError(t, err)
	second, err := engine.Compute(input)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestComputeRejectsInvalidApplicant(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Compute(applicant(17, 50000, 1.5, 1000, "excellent"))
	require.Equal(t, []string{FieldAge, FieldDebtToIncomeRatio, FieldCreditHistory}, violationFields(t, err))

	_, err = engine.Compute(applicant(30, math.NaN(), 0.2, 1000, CreditHistoryGood))
	require.Equal(t, []string{FieldAnnualIncome}, violationFields(t, err))
}

func TestEvaluateReportsAdjustmentsInOrder(t *testing.T) {
	engine := newTestEngine(t)

	evaluation, err := engine.Evaluate(applicant(22, 30000, 0.6, 20000, CreditHistoryBad))
	require.NoError(t, err)
	require.Equal(t, []Adjustment{
		{Rule: RuleAgeUnder25, Delta: -50},
		{Rule: RuleDebtRatioOver40pct, Delta: -80},
		{Rule: RuleBadCreditHistory, Delta: -150},
		{Rule: RuleLoanRatioOver50pct, Delta: -50},
	}, evaluation.Adjustments)
	require.Equal(t, 300, evaluation.Score)

	evaluation, err = engine.Evaluate(applicant(35, 60000, 0.3, 25000, CreditHistoryGood))
	require.NoError(t, err)
	require.Equal(t, []Adjustment{{Rule: RuleIncomeOver50k, Delta: 40}}, evaluation.Adjustments)
}

func TestScoreStaysWithinRange(t *testing.T) {
	engine := newTestEngine(t)
	ages := []int{18, 24, 40, 61, 120}
	incomes := []float64{0, 20000, 60000, 150000, 500000}
	ratios := []float64{0, 0.41, 1}
	loans := []float64{1, 5000, 50000, 1000000}
	histories := []CreditHistory{CreditHistoryGood, CreditHistoryBad}

	for _, age := range ages {
		for _, income := range incomes {
			for _, ratio := range ratios {
				for _, loan := range loans {
					for _, history := range histories {
						result, err := engine.Compute(applicant(age, income, ratio, loan, history))
						require.NoError(t, err)
						require.GreaterOrEqual(t, result.Score, MinScore)
						require.LessOrEqual(t, result.Score, MaxScore)
						require.Equal(t, ClassifyRisk(result.Score), result.RiskCategory)
					}
				}
			}
		}
	}
}

func TestClassifyRisk(t *testing.T) {
	cases := map[int]RiskCategory{
		300: RiskHigh,
		649: RiskHigh,
		650: RiskMedium,
		749: RiskMedium,
		750: RiskLow,
		850: RiskLow,
	}
	for score, expected := range cases {
		require.Equal(t, expected, ClassifyRisk(score), "score %d", score)
	}
}

func TestLoanToIncomeRatio(t *testing.T) {
	require.InDelta(t, 0.4166, LoanToIncomeRatio(25000, 60000), 0.001)
	require.True(t, math.IsInf(LoanToIncomeRatio(1000, 0), 1))
}
