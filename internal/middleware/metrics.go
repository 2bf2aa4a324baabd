package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront/pkg/metrics"
)

// Metrics records one observation per request. It must wrap Logging so the
// final status is already written when it reads it.
func Metrics(m *metrics.HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		m.Observe(c.Method(), c.Route().Path, c.Response().StatusCode(), time.Since(start))
		return err
	}
}
