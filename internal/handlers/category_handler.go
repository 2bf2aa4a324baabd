package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/pkg/logger"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
	log     *logger.Logger
}

func NewCategoryHandler(service *services.CategoryService, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, log: log}
}

func (h *CategoryHandler) RegisterRoutes(router fiber.Router, guard Guard) {
	categories := router.Group("/categories")
	categories.Post("/", guard(models.RoleAdmin), h.HandleCreateCategory)
	categories.Get("/", h.HandleGetCategories)
	categories.Get("/:id", h.HandleGetCategoryByID)
	categories.Put("/:id", guard(models.RoleAdmin), h.HandleRenameCategory)
	categories.Delete("/:id", guard(models.RoleAdmin), h.HandleDeleteCategory)
}

func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req services.CategoryInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	category, err := h.service.CreateCategory(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleRenameCategory(c *fiber.Ctx) error {
	var req services.CategoryInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	category, err := h.service.RenameCategory(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return deleted(c, "Category deleted successfully")
}
