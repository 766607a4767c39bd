package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/noah-isme/creditsim-api/internal/observability"
	"github.com/noah-isme/creditsim-api/internal/utils"
)

// RateLimitPolicy names a limiter and its budget per client address.
type RateLimitPolicy struct {
	Name   string
	Max    int
	Window time.Duration
}

// RateLimitDetails is returned to clients that exhausted a policy.
type RateLimitDetails struct {
	Policy            string `json:"policy"`
	Limit             int    `json:"limit"`
	RetryAfterSeconds int    `json:"retryAfterSeconds"`
}

// SimulationPolicy is the budget applied to POST /api/simulate.
func SimulationPolicy(max int, window time.Duration) RateLimitPolicy {
	return RateLimitPolicy{Name: "simulate", Max: max, Window: window}
}

// RateLimit limits requests per client address under the given policy.
// Rejections carry a Retry-After header and are counted per policy.
func RateLimit(policy RateLimitPolicy) fiber.Handler {
	if policy.Name == "" {
		policy.Name = "default"
	}
	if policy.Max <= 0 {
		policy.Max = 30
	}
	if policy.Window <= 0 {
		policy.Window = time.Minute
	}
	retryAfter := int(math.Ceil(policy.Window.Seconds()))

	return limiter.New(limiter.Config{
		Max:        policy.Max,
		Expiration: policy.Window,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return policy.Name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			observability.RateLimited().WithLabelValues(policy.Name).Inc()
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return utils.SendErrorWithDetails(c, fiber.StatusTooManyRequests, "too many requests, try again later", RateLimitDetails{
				Policy:            policy.Name,
				Limit:             policy.Max,
				RetryAfterSeconds: retryAfter,
			})
		},
	})
}
