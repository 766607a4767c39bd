package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/creditsim-api/internal/models"
	"github.com/noah-isme/creditsim-api/internal/scoring"
)

// ScoringDisclaimer accompanies every criteria payload.
const ScoringDisclaimer = "This is a demonstration scoring model and should not be used for actual credit decisions."

// SimulationListQuery holds the filters accepted when listing simulations.
type SimulationListQuery struct {
	Risk     string `query:"risk" validate:"omitempty,oneof=low medium high"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// ApplicantResponse echoes the applicant attributes that were scored.
type ApplicantResponse struct {
	Name              string  `json:"name"`
	Age               int     `json:"age"`
	AnnualIncome      float64 `json:"annualIncome"`
	DebtToIncomeRatio float64 `json:"debtToIncomeRatio"`
	LoanAmount        float64 `json:"loanAmount"`
	CreditHistory     string  `json:"creditHistory"`
}

// SimulationCreateResponse is returned after a successful simulation.
type SimulationCreateResponse struct {
	ID           uint                 `json:"id"`
	Score        int                  `json:"score"`
	RiskCategory string               `json:"riskCategory"`
	Adjustments  []scoring.Adjustment `json:"adjustments"`
	Customer     ApplicantResponse    `json:"customer"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// SimulationSummary is the compact history entry.
type SimulationSummary struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Score        int       `json:"score"`
	RiskCategory string    `json:"riskCategory"`
	LoanAmount   float64   `json:"loanAmount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SimulationListResponse wraps a page of history entries.
type SimulationListResponse struct {
	Count       int                 `json:"count"`
	Total       int64               `json:"total"`
	Simulations []SimulationSummary `json:"simulations"`
}

// SimulationDetailResponse is the full stored simulation.
type SimulationDetailResponse struct {
	ID                uint                 `json:"id"`
	Name              string               `json:"name"`
	Age               int                  `json:"age"`
	AnnualIncome      float64              `json:"annualIncome"`
	DebtToIncomeRatio float64              `json:"debtToIncomeRatio"`
	LoanAmount        float64              `json:"loanAmount"`
	CreditHistory     string               `json:"creditHistory"`
	Score             int                  `json:"score"`
	RiskCategory      string               `json:"riskCategory"`
	Adjustments       []scoring.Adjustment `json:"adjustments"`
	CreatedAt         time.Time            `json:"createdAt"`
}

// CriteriaResponse exposes the scoring rules to clients.
type CriteriaResponse struct {
	Criteria   scoring.CriteriaInfo `json:"criteria"`
	Disclaimer string               `json:"disclaimer"`
}

// SimulationEvent is published whenever a simulation is stored.
type SimulationEvent struct {
	ID            uint      `json:"id"`
	Score         int       `json:"score"`
	RiskCategory  string    `json:"riskCategory"`
	LoanAmount    float64   `json:"loanAmount"`
	CorrelationID string    `json:"correlationId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewSimulationCreateResponse converts a stored simulation and its breakdown into a DTO.
func NewSimulationCreateResponse(model models.Simulation, adjustments []scoring.Adjustment) SimulationCreateResponse {
	return SimulationCreateResponse{
		ID:           model.ID,
		Score:        model.Score,
		RiskCategory: model.RiskCategory,
		Adjustments:  adjustmentsOrEmpty(adjustments),
		Customer: ApplicantResponse{
			Name:              model.Name,
			Age:               model.Age,
			AnnualIncome:      model.AnnualIncome,
			DebtToIncomeRatio: model.DebtToIncomeRatio,
			LoanAmount:        model.LoanAmount,
			CreditHistory:     model.CreditHistory,
		},
		CreatedAt: model.CreatedAt,
	}
}

// NewSimulationSummary converts a model into a history entry.
func NewSimulationSummary(model models.Simulation) SimulationSummary {
	return SimulationSummary{
		ID:           model.ID,
		Name:         model.Name,
		Score:        model.Score,
		RiskCategory: model.RiskCategory,
		LoanAmount:   model.LoanAmount,
		CreatedAt:    model.CreatedAt,
	}
}

// NewSimulationListResponse converts a page of models into the list payload.
func NewSimulationListResponse(items []models.Simulation, total int64) SimulationListResponse {
	summaries := make([]SimulationSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, NewSimulationSummary(item))
	}

	return SimulationListResponse{
		Count:       len(summaries),
		Total:       total,
		Simulations: summaries,
	}
}

// NewSimulationDetailResponse converts a model into the detail payload.
func NewSimulationDetailResponse(model models.Simulation) SimulationDetailResponse {
	return SimulationDetailResponse{
		ID:                model.ID,
		Name:              model.Name,
		Age:               model.Age,
		AnnualIncome:      model.AnnualIncome,
		DebtToIncomeRatio: model.DebtToIncomeRatio,
		LoanAmount:        model.LoanAmount,
		CreditHistory:     model.CreditHistory,
		Score:             model.Score,
		RiskCategory:      model.RiskCategory,
		Adjustments:       adjustmentsOrEmpty(model.Adjustments),
		CreatedAt:         model.CreatedAt,
	}
}

// AdjustmentsToJSON stores a breakdown in cascade order.
func AdjustmentsToJSON(adjustments []scoring.Adjustment) datatypes.JSONSlice[scoring.Adjustment] {
	return datatypes.NewJSONSlice(adjustmentsOrEmpty(adjustments))
}

func adjustmentsOrEmpty(adjustments []scoring.Adjustment) []scoring.Adjustment {
	if adjustments == nil {
		return []scoring.Adjustment{}
	}
	return adjustments
}
