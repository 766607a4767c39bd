package handler

import (
	"math"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/creditsim-api/internal/config"
	"github.com/noah-isme/creditsim-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Service       string    `json:"service"`
	Environment   string    `json:"environment"`
	UptimeSeconds float64   `json:"uptimeSeconds"`
}

// HealthCheck returns a handler that reports application health information.
func HealthCheck(cfg config.Config, startedAt time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now().UTC()
		payload := HealthResponse{
			Status:        "ok",
			Timestamp:     now,
			Service:       cfg.AppName,
			Environment:   cfg.AppEnv,
			UptimeSeconds: math.Round(now.Sub(startedAt).Seconds()*1000) / 1000,
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
