package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/creditsim-api/internal/dto"
	"github.com/noah-isme/creditsim-api/internal/middleware"
	"github.com/noah-isme/creditsim-api/internal/models"
	"github.com/noah-isme/creditsim-api/internal/observability"
	"github.com/noah-isme/creditsim-api/internal/repository"
	"github.com/noah-isme/creditsim-api/internal/scoring"
)

// ErrSimulationNotFound indicates the requested simulation does not exist.
var ErrSimulationNotFound = errors.New("simulation not found")

var riskFilters = map[string]scoring.RiskCategory{
	"low":    scoring.RiskLow,
	"medium": scoring.RiskMedium,
	"high":   scoring.RiskHigh,
}

// SimulationService exposes the credit simulation use cases.
type SimulationService interface {
	Simulate(ctx context.Context, raw scoring.RawApplicant) (dto.SimulationCreateResponse, error)
	Get(ctx context.Context, id uint) (dto.SimulationDetailResponse, error)
	List(ctx context.Context, query dto.SimulationListQuery) (dto.SimulationListResponse, error)
	Criteria() dto.CriteriaResponse
}

type simulationService struct {
	repo       repository.SimulationRepository
	applicants *scoring.Validator
	engine     *scoring.Engine
	validator  *validator.Validate
	sanitizer  *bluemonday.Policy
	cache      *redis.Client
	cacheTTL   time.Duration
	publisher  SimulationPublisher
	logger     zerolog.Logger
	tracer     trace.Tracer
}

// NewSimulationService builds the simulation workflow. A nil cache disables caching.
func NewSimulationService(repo repository.SimulationRepository, applicants *scoring.Validator, engine *scoring.Engine, validate *validator.Validate, cache *redis.Client, cacheTTL time.Duration, publisher SimulationPublisher, logger zerolog.Logger) SimulationService {
	if publisher == nil {
		publisher = NewLogSimulationPublisher(logger)
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}

	return &simulationService{
		repo:       repo,
		applicants: applicants,
		engine:     engine,
		validator:  validate,
		sanitizer:  bluemonday.StrictPolicy(),
		cache:      cache,
		cacheTTL:   cacheTTL,
		publisher:  publisher,
		logger:     logger.With().Str("component", "simulation_service").Logger(),
		tracer:     otel.Tracer("github.com/noah-isme/creditsim-api/internal/service/simulation"),
	}
}

func (s *simulationService) Simulate(ctx context.Context, raw scoring.RawApplicant) (dto.SimulationCreateResponse, error) {
	ctx, span := s.tracer.Start(ctx, "simulation.simulate")
	defer span.End()

	applicant, err := s.applicants.Validate(raw)
	if err != nil {
		return dto.SimulationCreateResponse{}, s.rejected(span, err)
	}

	applicant.Name = s.plainText(applicant.Name)
	if applicant.Name == "" {
		return dto.SimulationCreateResponse{}, s.rejected(span, scoring.NewValidationError(scoring.FieldName, scoring.MessageFor(scoring.FieldName)))
	}

	evaluation, err := s.engine.Evaluate(applicant)
	if err != nil {
		return dto.SimulationCreateResponse{}, s.rejected(span, err)
	}

	span.SetAttributes(
		attribute.Int("simulation.score", evaluation.Score),
		attribute.String("simulation.risk_category", string(evaluation.RiskCategory)),
	)

	record := models.Simulation{
		Name:              applicant.Name,
		Age:               applicant.Age,
		AnnualIncome:      applicant.AnnualIncome,
		DebtToIncomeRatio: applicant.DebtToIncomeRatio,
		LoanAmount:        applicant.LoanAmount,
		CreditHistory:     string(applicant.CreditHistory),
		Score:             evaluation.Score,
		RiskCategory:      string(evaluation.RiskCategory),
		Adjustments:       dto.AdjustmentsToJSON(evaluation.Adjustments),
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		observability.Simulations().WithLabelValues("error").Inc()
		return dto.SimulationCreateResponse{}, fmt.Errorf("store simulation: %w", err)
	}

	observability.Simulations().WithLabelValues(record.RiskCategory).Inc()
	observability.SimulationScores().Observe(float64(record.Score))

	event := dto.SimulationEvent{
		ID:            record.ID,
		Score:         record.Score,
		RiskCategory:  record.RiskCategory,
		LoanAmount:    record.LoanAmount,
		CorrelationID: middleware.CorrelationIDFromContext(ctx),
		CreatedAt:     record.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		span.RecordError(err)
		s.logger.Warn().Err(err).Uint("simulation_id", record.ID).Msg("failed to publish simulation event")
	}

	s.logger.Info().
		Uint("simulation_id", record.ID).
		Int("score", record.Score).
		Str("risk_category", record.RiskCategory).
		Msg("simulation stored")
	span.SetStatus(codes.Ok, "stored")

	return dto.NewSimulationCreateResponse(record, evaluation.Adjustments), nil
}

func (s *simulationService) Get(ctx context.Context, id uint) (dto.SimulationDetailResponse, error) {
	ctx, span := s.tracer.Start(ctx, "simulation.get")
	defer span.End()
	span.SetAttributes(attribute.Int64("simulation.id", int64(id)))

	cacheKey := fmt.Sprintf("simulation:%d", id)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.SimulationDetailResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				observability.SimulationCache().WithLabelValues("hit").Inc()
				return response, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read simulation cache")
		}
		observability.SimulationCache().WithLabelValues("miss").Inc()
	}

	simulation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "not found")
			return dto.SimulationDetailResponse{}, ErrSimulationNotFound
		}
		span.RecordError(err)
		return dto.SimulationDetailResponse{}, err
	}

	response := dto.NewSimulationDetailResponse(simulation)

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store simulation cache")
			}
		}
	}

	return response, nil
}

func (s *simulationService) List(ctx context.Context, query dto.SimulationListQuery) (dto.SimulationListResponse, error) {
	ctx, span := s.tracer.Start(ctx, "simulation.list")
	defer span.End()

	query.Risk = strings.ToLower(strings.TrimSpace(query.Risk))
	if err := s.validator.Struct(query); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return dto.SimulationListResponse{}, err
	}

	filter := repository.SimulationFilter{Page: query.Page, PageSize: query.PageSize}
	if category, ok := riskFilters[query.Risk]; ok {
		filter.RiskCategory = string(category)
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		return dto.SimulationListResponse{}, err
	}

	return dto.NewSimulationListResponse(items, total), nil
}

func (s *simulationService) Criteria() dto.CriteriaResponse {
	return dto.CriteriaResponse{
		Criteria:   scoring.DescribeCriteria(),
		Disclaimer: dto.ScoringDisclaimer,
	}
}

func (s *simulationService) rejected(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "validation failed")
	observability.Simulations().WithLabelValues("invalid").Inc()
	return err
}

// maxSanitizePasses bounds the strip/unescape loop for nested entity encodings.
const maxSanitizePasses = 8

// plainText strips markup from user supplied text before it is stored.
// Entity-encoded markup is decoded and stripped again until the text is stable.
// Text that still carries angle brackets is rejected by returning "".
func (s *simulationService) plainText(value string) string {
	current := value
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(s.sanitizer.Sanitize(current))
		if next == current {
			break
		}
		current = next
	}

	if strings.ContainsAny(current, "<>") {
		return ""
	}
	return strings.TrimSpace(current)
}
