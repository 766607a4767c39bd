package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/creditsim-api/internal/dto"
	"github.com/noah-isme/creditsim-api/internal/scoring"
	"github.com/noah-isme/creditsim-api/internal/service"
	"github.com/noah-isme/creditsim-api/internal/utils"
)

// SimulationHandler exposes the credit simulation endpoints.
type SimulationHandler struct {
	service service.SimulationService
	logger  zerolog.Logger
}

// NewSimulationHandler constructs a simulation handler.
func NewSimulationHandler(service service.SimulationService, logger zerolog.Logger) *SimulationHandler {
	return &SimulationHandler{
		service: service,
		logger:  logger.With().Str("component", "simulation_handler").Logger(),
	}
}

// Register wires simulation routes. Extra handlers run before the simulate endpoint only.
func (h *SimulationHandler) Register(router fiber.Router, simulateMiddleware ...fiber.Handler) {
	simulate := append(append([]fiber.Handler{}, simulateMiddleware...), h.simulate)
	router.Post("/simulate", simulate...)
	router.Get("/simulations", h.list)
	router.Get("/simulations/:id", h.get)
	router.Get("/simulation/:id", h.get)
	router.Get("/scoring-criteria", h.criteria)
}

func (h *SimulationHandler) simulate(c *fiber.Ctx) error {
	var payload scoring.RawApplicant
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Simulate(c.UserContext(), payload)
	if err != nil {
		var validationErr *scoring.ValidationError
		if errors.As(err, &validationErr) {
			return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "validation failed", validationErr.Violations)
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to run simulation")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to run simulation")
	}

	return utils.SendCreated(c, "simulation completed", response)
}

func (h *SimulationHandler) list(c *fiber.Ctx) error {
	var query dto.SimulationListQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	response, err := h.service.List(c.UserContext(), query)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list simulations")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to retrieve simulations")
	}

	return utils.SendSuccess(c, "simulations retrieved", response)
}

func (h *SimulationHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendErrorWithDetails(c, fiber.StatusBadRequest, "invalid identifier", []scoring.Violation{
			{Field: "id", Message: "ID must be a positive integer"},
		})
	}

	response, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrSimulationNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "simulation not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("simulation_id", id).Msg("failed to load simulation")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to retrieve simulation")
	}

	return utils.SendSuccess(c, "simulation retrieved", response)
}

func (h *SimulationHandler) criteria(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "scoring criteria retrieved", h.service.Criteria())
}
