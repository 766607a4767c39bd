package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/creditsim-api/internal/dto"
	"github.com/noah-isme/creditsim-api/internal/scoring"
)

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	schemaPath, err := filepath.Abs(filepath.Join("testdata", name))
	require.NoError(t, err)

	schema, err := jsonschema.NewCompiler().Compile("file://" + schemaPath)
	require.NoError(t, err)
	return schema
}

func validateBody(t *testing.T, schema *jsonschema.Schema, resp *http.Response) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}

func TestSimulationCreateContract(t *testing.T) {
	schema := compileSchema(t, "simulation_create.schema.json")
	svc := &mockSimulationService{created: dto.SimulationCreateResponse{
		ID:           1,
		Score:        640,
		RiskCategory: string(scoring.RiskHigh),
		Adjustments:  []scoring.Adjustment{{Rule: scoring.RuleIncomeOver50k, Delta: 40}},
		Customer: dto.ApplicantResponse{
			Name:              "John Doe",
			Age:               30,
			AnnualIncome:      60000,
			DebtToIncomeRatio: 0.3,
			LoanAmount:        25000,
			CreditHistory:     "good",
		},
		CreatedAt: time.Now().UTC(),
	}}

	resp := postJSON(t, newSimulationApp(svc), "/api/simulate", johnDoe)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	validateBody(t, schema, resp)
}

func TestSimulationDetailContract(t *testing.T) {
	schema := compileSchema(t, "simulation_detail.schema.json")
	svc := &mockSimulationService{detail: dto.SimulationDetailResponse{
		ID:                1,
		Name:              "John Doe",
		Age:               22,
		AnnualIncome:      60000,
		DebtToIncomeRatio: 0.3,
		LoanAmount:        40000,
		CreditHistory:     "bad",
		Score:             470,
		RiskCategory:      string(scoring.RiskHigh),
		Adjustments: []scoring.Adjustment{
			{Rule: scoring.RuleAgeUnder25, Delta: -20},
			{Rule: scoring.RuleIncomeOver50k, Delta: 40},
			{Rule: scoring.RuleBadCreditHistory, Delta: -100},
			{Rule: scoring.RuleLoanRatioOver50pct, Delta: -50},
		},
		CreatedAt: time.Now().UTC(),
	}}

	resp := get(t, newSimulationApp(svc), "/api/simulation/1")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	validateBody(t, schema, resp)
}

func TestSimulationValidationContract(t *testing.T) {
	schema := compileSchema(t, "validation_error.schema.json")
	svc := &mockSimulationService{err: scoring.NewValidationError(scoring.FieldAge, scoring.MessageFor(scoring.FieldAge))}

	resp := postJSON(t, newSimulationApp(svc), "/api/simulate", johnDoe)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	validateBody(t, schema, resp)
}

func TestSimulationListContract(t *testing.T) {
	schema := compileSchema(t, "simulation_list.schema.json")
	svc := &mockSimulationService{list: dto.SimulationListResponse{
		Count: 2,
		Total: 2,
		Simulations: []dto.SimulationSummary{
			{ID: 2, Name: "Jane", Score: 760, RiskCategory: string(scoring.RiskLow), LoanAmount: 10000, CreatedAt: time.Now().UTC()},
			{ID: 1, Name: "John", Score: 640, RiskCategory: string(scoring.RiskHigh), LoanAmount: 25000, CreatedAt: time.Now().UTC()},
		},
	}}

	resp := get(t, newSimulationApp(svc), "/api/simulations")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	validateBody(t, schema, resp)
}

func TestScoringCriteriaContract(t *testing.T) {
	schema := compileSchema(t, "scoring_criteria.schema.json")
	svc := &mockSimulationService{criteria: dto.CriteriaResponse{
		Criteria:   scoring.DescribeCriteria(),
		Disclaimer: dto.ScoringDisclaimer,
	}}

	resp := get(t, newSimulationApp(svc), "/api/scoring-criteria")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	validateBody(t, schema, resp)
}
