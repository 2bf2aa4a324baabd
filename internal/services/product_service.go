package services

import (
	"context"
	"math"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/validators"
	"storefront/pkg/apperror"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// sortColumns maps the public sortBy values onto columns.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"name":      "name",
}

type CreateProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	CategoryID  string   `json:"category_id" validate:"required"`
	Images      []string `json:"images" validate:"required"`
}

// UpdateProductInput is a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	CategoryID  *string   `json:"category_id"`
	Images      *[]string `json:"images"`
}

// PageQuery carries the catalog filters. Zero Page and Limit mean defaults.
type PageQuery struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
	SortBy   string
	Order    string
	Page     int
	Limit    int
}

type Page struct {
	Products      []models.Product `json:"products"`
	TotalProducts int64            `json:"totalProducts"`
	TotalPages    int              `json:"totalPages"`
	CurrentPage   int              `json:"currentPage"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list products")
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "product", id)
	}
	return product, nil
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	if err := validators.Struct(&in); err != nil {
		return nil, err
	}
	if len(in.Images) == 0 {
		return nil, apperror.New(apperror.CodeMissingField, "missing required field: images").WithDetail("images", "is required")
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		CategoryID:  in.CategoryID,
		Images:      in.Images,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, writeError(err, "product", "create")
	}
	return product, nil
}

// UpdateProduct applies a partial update to an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "product", id)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperror.New(apperror.CodeInvalidFormat, "name must not be blank").WithDetail("field", "name")
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.CategoryID != nil {
		product.CategoryID = strings.TrimSpace(*in.CategoryID)
	}
	if in.Images != nil {
		if len(*in.Images) == 0 {
			return nil, apperror.New(apperror.CodeInvalidFormat, "images must not be empty").WithDetail("field", "images")
		}
		product.Images = *in.Images
	}

	// The loaded category may no longer match category_id.
	product.Category = nil

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, writeError(err, "product", "update")
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID. Orders keep their line items.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "product", id)
	}
	return nil
}

// pageOffset is (page-1)*limit, saturating at math.MaxInt so a page far past
// the end stays past the end instead of wrapping around.
func pageOffset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// ListPage runs a filtered, sorted and paginated catalog query.
func (s *ProductService) ListPage(ctx context.Context, q PageQuery) (*Page, error) {
	page := q.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, apperror.New(apperror.CodeInvalidFormat, "page must be at least 1").WithDetail("field", "page")
	}
	limit := q.Limit
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 1 {
		return nil, apperror.New(apperror.CodeInvalidFormat, "limit must be at least 1").WithDetail("field", "limit")
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return nil, apperror.New(apperror.CodeInvalidFormat, "sortBy must be one of createdAt, price, name").WithDetail("field", "sortBy")
	}

	var descending bool
	switch strings.ToLower(q.Order) {
	case "", "desc":
		descending = true
	case "asc":
	default:
		return nil, apperror.New(apperror.CodeInvalidFormat, "order must be asc or desc").WithDetail("field", "order")
	}

	products, total, err := s.repo.Search(ctx, repositories.ProductFilter{
		Name:       q.Name,
		CategoryID: q.Category,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		SortColumn: column,
		Descending: descending,
		Offset:     pageOffset(page, limit),
		Limit:      limit,
	})
	if err != nil {
		return nil, apperror.Internal(err, "failed to query products")
	}
	if products == nil {
		products = []models.Product{}
	}

	return &Page{
		Products:      products,
		TotalProducts: total,
		TotalPages:    int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage:   page,
	}, nil
}
