package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/responses"
	"storefront/pkg/apperror"
	"storefront/pkg/logger"
)

// RateLimiter is a fixed-window counter store.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimitPolicy throttles one route per client IP.
type RateLimitPolicy struct {
	Name   string
	Limit  int64
	Window time.Duration
}

func (p RateLimitPolicy) enabled() bool {
	return p.Limit > 0 && p.Window > 0
}

// RateLimit rejects callers over the policy with RATE_LIMITED. A nil limiter
// disables it, and limiter errors let the request through.
func RateLimit(policy RateLimitPolicy, limiter RateLimiter, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil || !policy.enabled() {
			return c.Next()
		}

		ctx := c.UserContext()
		ip := c.IP()
		allowed, count, err := limiter.FixedWindowAllow(ctx, policy.Name+":"+ip, policy.Limit, policy.Window)
		if err != nil {
			if log != nil {
				log.Warn(ctx, "rate_limit.unavailable", err)
			}
			return c.Next()
		}
		if !allowed {
			if log != nil {
				log.Warn(log.WithFields(ctx, map[string]any{
					"policy":   policy.Name,
					"ip":       ip,
					"attempts": count,
					"limit":    policy.Limit,
				}), "rate_limit.blocked", nil)
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(policy.Window.Seconds())))
			return responses.WriteError(c, log, apperror.New(apperror.CodeRateLimited, "too many login attempts, try again later"))
		}
		return c.Next()
	}
}
