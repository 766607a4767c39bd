package observability

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves the service registry in the OpenMetrics format.
// Scrape failures are counted on promhttp_metric_handler_errors_total in the same registry.
func MetricsHandler() fiber.Handler {
	reg := Registry()
	handler := promhttp.InstrumentMetricHandler(reg, promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		Registry:          reg,
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	}))
	return adaptor.HTTPHandler(handler)
}
