package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/internal/validators"
	"storefront/pkg/logger"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service *services.ProductService
	log     *logger.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *logger.Logger) *ProductHandler {
	return &ProductHandler{service: service, log: log}
}

// RegisterRoutes registers the product routes and the /getPage listing.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guard Guard) {
	products := router.Group("/products")
	products.Post("/", guard(models.RoleAdmin), h.HandleCreateProduct)
	products.Get("/", h.HandleGetProducts)
	products.Get("/:id", h.HandleGetProductByID)
	products.Put("/:id", guard(models.RoleAdmin), h.HandleUpdateProduct)
	products.Delete("/:id", guard(models.RoleAdmin), h.HandleDeleteProduct)

	router.Get("/getPage", h.HandleGetPage)
}

func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req services.CreateProductInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	product, err := h.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req services.UpdateProductInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return deleted(c, "Product deleted successfully")
}

// HandleGetPage serves the filtered, sorted and paginated product listing.
func (h *ProductHandler) HandleGetPage(c *fiber.Ctx) error {
	query, err := parsePageQuery(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	page, err := h.service.ListPage(c.UserContext(), query)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(page)
}

func parsePageQuery(c *fiber.Ctx) (services.PageQuery, error) {
	q := services.PageQuery{
		Name:     strings.TrimSpace(c.Query("name")),
		Category: strings.TrimSpace(c.Query("category")),
		SortBy:   strings.TrimSpace(c.Query("sortBy")),
		Order:    strings.TrimSpace(c.Query("order")),
	}

	var err error
	if q.MinPrice, err = validators.ParseQueryFloat(c.Query("minPrice"), "minPrice"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = validators.ParseQueryFloat(c.Query("maxPrice"), "maxPrice"); err != nil {
		return q, err
	}
	if q.Page, err = validators.ParseQueryInt(c.Query("page"), "page", 1, 1); err != nil {
		return q, err
	}
	if q.Limit, err = validators.ParseQueryInt(c.Query("limit"), "limit", services.DefaultPageLimit, 1); err != nil {
		return q, err
	}
	return q, nil
}
