package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/creditsim-api/internal/scoring"
)

// Simulation is a persisted scoring run: the applicant, its score and when it was made.
type Simulation struct {
	ID                uint                                    `gorm:"primaryKey" json:"id"`
	Name              string                                  `gorm:"size:100;not null" json:"name"`
	Age               int                                     `gorm:"not null;check:chk_simulations_age,age BETWEEN 18 AND 120" json:"age"`
	AnnualIncome      float64                                 `gorm:"not null;check:chk_simulations_annual_income,annual_income >= 0" json:"annualIncome"`
	DebtToIncomeRatio float64                                 `gorm:"not null;check:chk_simulations_debt_ratio,debt_to_income_ratio BETWEEN 0 AND 1" json:"debtToIncomeRatio"`
	LoanAmount        float64                                 `gorm:"not null;check:chk_simulations_loan_amount,loan_amount > 0" json:"loanAmount"`
	CreditHistory     string                                  `gorm:"size:8;not null;check:chk_simulations_credit_history,credit_history IN ('good','bad')" json:"creditHistory"`
	Score             int                                     `gorm:"not null;check:chk_simulations_score,score BETWEEN 300 AND 850" json:"score"`
	RiskCategory      string                                  `gorm:"size:16;not null;index;check:chk_simulations_risk_category,risk_category IN ('Low risk','Medium risk','High risk')" json:"riskCategory"`
	Adjustments       datatypes.JSONSlice[scoring.Adjustment] `gorm:"not null" json:"adjustments"`
	CreatedAt         time.Time                               `gorm:"index" json:"createdAt"`
}
