package scoring

// CreditHistory is the applicant's prior repayment behaviour.
type CreditHistory string

const (
	CreditHistoryGood CreditHistory = "good"
	CreditHistoryBad  CreditHistory = "bad"
)

// RiskCategory is derived solely from the final score.
type RiskCategory string

const (
	RiskLow    RiskCategory = "Low risk"
	RiskMedium RiskCategory = "Medium risk"
	RiskHigh   RiskCategory = "High risk"
)

// RawApplicant is an untrusted applicant record as received from a client.
// Numeric fields are pointers so a missing value can be told apart from zero.
type RawApplicant struct {
	Name              string   `json:"name" form:"name" validate:"required,max=100"`
	Age               *float64 `json:"age" form:"age" validate:"required,finite,whole,min=18,max=120"`
	AnnualIncome      *float64 `json:"annualIncome" form:"annualIncome" validate:"required,finite,min=0"`
	DebtToIncomeRatio *float64 `json:"debtToIncomeRatio" form:"debtToIncomeRatio" validate:"required,finite,min=0,max=1"`
	LoanAmount        *float64 `json:"loanAmount" form:"loanAmount" validate:"required,finite,gt=0"`
	CreditHistory     string   `json:"creditHistory" form:"creditHistory" validate:"required,oneof=good bad"`
}

// ApplicantInput is a validated applicant record.
type ApplicantInput struct {
	Name              string        `json:"name"`
	Age               int           `json:"age"`
	AnnualIncome      float64       `json:"annualIncome"`
	DebtToIncomeRatio float64       `json:"debtToIncomeRatio"`
	LoanAmount        float64       `json:"loanAmount"`
	CreditHistory     CreditHistory `json:"creditHistory"`
}

// Raw converts the applicant back into its untrusted form so it can be re-validated.
func (a ApplicantInput) Raw() RawApplicant {
	age := float64(a.Age)
	income := a.AnnualIncome
	ratio := a.DebtToIncomeRatio
	loan := a.LoanAmount

	return RawApplicant{
		Name:              a.Name,
		Age:               &age,
		AnnualIncome:      &income,
		DebtToIncomeRatio: &ratio,
		LoanAmount:        &loan,
		CreditHistory:     string(a.CreditHistory),
	}
}

// ScoringResult is the outcome of scoring an applicant.
type ScoringResult struct {
	Score        int          `json:"score"`
	RiskCategory RiskCategory `json:"riskCategory"`
}

// Adjustment records a single rule that changed the score.
type Adjustment struct {
	Rule  string `json:"rule"`
	Delta int    `json:"delta"`
}

// Evaluation is a scoring result together with the adjustments that produced it.
type Evaluation struct {
	ScoringResult
	Adjustments []Adjustment `json:"adjustments"`
}
