package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/responses"
	"storefront/internal/services"
	"storefront/pkg/apperror"
	"storefront/pkg/logger"
)

const identityKey = "identity"

// Authorizer resolves a bearer token to an identity permitted by allowed.
type Authorizer interface {
	Authorize(ctx context.Context, token string, allowed []models.Role) (*services.Identity, error)
}

// AuthRequired rejects requests without a valid bearer token whose owner
// holds one of roles. No roles means any authenticated user.
func AuthRequired(auth Authorizer, log *logger.Logger, roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return responses.WriteError(c, log, err)
		}

		identity, err := auth.Authorize(c.UserContext(), token, roles)
		if err != nil {
			return responses.WriteError(c, log, err)
		}

		c.Locals(identityKey, identity)
		if log != nil {
			c.SetUserContext(log.WithUserID(c.UserContext(), identity.UserID))
		}
		return c.Next()
	}
}

// Expected format: "Bearer <token>"
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperror.New(apperror.CodeUnauthenticated, "authorization header is required")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperror.New(apperror.CodeUnauthenticated, "authorization header format must be 'Bearer <token>'")
	}
	return strings.TrimSpace(parts[1]), nil
}

// IdentityFrom returns the identity stored by AuthRequired, or nil.
func IdentityFrom(c *fiber.Ctx) *services.Identity {
	identity, _ := c.Locals(identityKey).(*services.Identity)
	return identity
}
