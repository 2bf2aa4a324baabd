package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/pkg/logger"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
	log     *logger.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{service: service, log: log}
}

// RegisterRoutes registers the order routes. Only listing is restricted.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, guard Guard) {
	orders := router.Group("/orders")
	orders.Post("/", h.HandleCreateOrder)
	orders.Get("/", guard(models.RoleAdmin), h.HandleGetOrders)
	orders.Get("/:id", h.HandleGetOrderByID)
	orders.Put("/:id", h.HandleUpdateOrder)
	orders.Delete("/:id", h.HandleDeleteOrder)
}

// HandleCreateOrder places a new order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req services.CreateOrderInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	order, err := h.service.CreateOrder(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(order)
}

// HandleUpdateOrder changes the status and/or shipping address.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	var req services.UpdateOrderInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	order, err := h.service.UpdateOrder(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.service.DeleteOrder(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return deleted(c, "Order deleted successfully")
}
