package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/responses"
	"storefront/pkg/apperror"
	"storefront/pkg/logger"
)

// Guard builds the middleware that admits callers holding one of roles.
type Guard func(roles ...models.Role) fiber.Handler

func parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		return apperror.Wrap(apperror.CodeInvalidFormat, err, "invalid request body")
	}
	return nil
}

func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	return responses.WriteError(c, log, err)
}

func deleted(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"message": message})
}
