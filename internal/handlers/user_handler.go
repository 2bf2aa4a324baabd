package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/pkg/logger"
)

// UserHandler handles HTTP requests for user administration.
type UserHandler struct {
	service *services.UserService
	log     *logger.Logger
}

func NewUserHandler(service *services.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{service: service, log: log}
}

func (h *UserHandler) RegisterRoutes(router fiber.Router, guard Guard) {
	users := router.Group("/users")
	users.Get("/", guard(models.RoleAdmin), h.HandleGetUsers)
	users.Get("/:id", guard(models.RoleAdmin, models.RoleUser), h.HandleGetUserByID)
	users.Put("/:id", guard(models.RoleAdmin), h.HandleUpdateUser)
	users.Delete("/:id", guard(models.RoleAdmin), h.HandleDeleteUser)
}

func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	user, err := h.service.GetUserByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req services.UpdateUserInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	user, err := h.service.UpdateUser(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.service.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return deleted(c, "User deleted successfully")
}
