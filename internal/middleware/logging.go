package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"storefront/pkg/logger"
)

// Logging binds request fields to the user context, logs request.start and
// request.complete, and renders any error returned further down the chain
// so the logged status is the one the client sees.
func Logging(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if reqID, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && reqID != "" {
			ctx = log.WithRequestID(ctx, reqID)
		}
		ctx = log.WithFields(ctx, map[string]any{
			"method": c.Method(),
			"path":   c.Path(),
		})
		c.SetUserContext(ctx)

		start := time.Now()
		log.Info(ctx, "request.start")

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.Info(log.WithFields(c.UserContext(), map[string]any{
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
		}), "request.complete")
		return nil
	}
}
