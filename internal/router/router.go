package router

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"github.com/noah-isme/creditsim-api/internal/config"
	"github.com/noah-isme/creditsim-api/internal/handler"
	"github.com/noah-isme/creditsim-api/internal/observability"
	"github.com/noah-isme/creditsim-api/internal/utils"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	SimulationHandler *handler.SimulationHandler
	RateLimit         fiber.Handler
	UI                http.FileSystem
	StartedAt         time.Time
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	startedAt := deps.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}

	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, startedAt))

	if deps.SimulationHandler != nil {
		var simulateMiddleware []fiber.Handler
		if deps.RateLimit != nil {
			simulateMiddleware = append(simulateMiddleware, deps.RateLimit)
		}
		deps.SimulationHandler.Register(api, simulateMiddleware...)
	}

	api.Use(func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusNotFound, "endpoint not found")
	})

	if deps.UI != nil {
		app.Use("/", filesystem.New(filesystem.Config{
			Root:  deps.UI,
			Index: "index.html",
		}))
	}
}
