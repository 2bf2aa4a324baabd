package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/apperror"
	"storefront/pkg/logger"
	"storefront/pkg/rabbitmq"
)

type OrderLineInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderInput struct {
	CustomerID      string           `json:"customer_id"`
	Products        []OrderLineInput `json:"products"`
	ShippingAddress string           `json:"shippingAddress"`
}

// UpdateOrderInput only touches status and address; totals and line items
// are fixed at creation.
type UpdateOrderInput struct {
	Status          *int    `json:"status"`
	ShippingAddress *string `json:"shippingAddress"`
}

// OrderEventPublisher announces persisted orders.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event rabbitmq.OrderCreatedEvent) error
}

// OrderCounter counts persisted orders.
type OrderCounter interface {
	IncCreated()
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orders    repositories.OrderRepository
	products  repositories.ProductRepository
	users     repositories.UserRepository
	publisher OrderEventPublisher
	counter   OrderCounter
	log       *logger.Logger
}

// NewOrderService creates a new OrderService. publisher and counter may be nil.
func NewOrderService(
	orders repositories.OrderRepository,
	products repositories.ProductRepository,
	users repositories.UserRepository,
	publisher OrderEventPublisher,
	counter OrderCounter,
	log *logger.Logger,
) *OrderService {
	if log == nil {
		log = logger.Nop()
	}
	return &OrderService{
		orders:    orders,
		products:  products,
		users:     users,
		publisher: publisher,
		counter:   counter,
		log:       log,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list orders")
	}
	return orders, nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "order", id)
	}
	return order, nil
}

// CreateOrder resolves the customer and every product in input order,
// captures current prices and persists the order. The first unknown product
// aborts the request before anything is written.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := validateOrderInput(&in); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, in.CustomerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.Newf(apperror.CodeUnknownCustomer, "customer %s does not exist", in.CustomerID).
				WithDetail("customer_id", in.CustomerID)
		}
		return nil, apperror.Internal(err, "failed to load customer")
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(in.Products))
	for i, line := range in.Products {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, apperror.Newf(apperror.CodeUnknownProduct, "product %s does not exist", line.ProductID).
					WithDetail("product_id", line.ProductID).
					WithDetail("index", i)
			}
			return nil, apperror.Internal(err, "failed to load product")
		}

		total = total.Add(decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, models.OrderItem{
			Position:  i,
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}

	order := &models.Order{
		CustomerID:      in.CustomerID,
		Items:           items,
		TotalPrice:      total.InexactFloat64(),
		Status:          models.OrderStatusPlaced,
		ShippingAddress: in.ShippingAddress,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, writeError(err, "order", "create")
	}

	if s.counter != nil {
		s.counter.IncCreated()
	}
	s.publishCreated(ctx, order)
	return order, nil
}

func validateOrderInput(in *CreateOrderInput) error {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.ShippingAddress = strings.TrimSpace(in.ShippingAddress)

	if in.CustomerID == "" {
		return missingField("customer_id")
	}
	if len(in.Products) == 0 {
		return missingField("products")
	}
	if in.ShippingAddress == "" {
		return missingField("shippingAddress")
	}
	for i := range in.Products {
		line := &in.Products[i]
		line.ProductID = strings.TrimSpace(line.ProductID)
		if line.ProductID == "" {
			return missingField("product_id").WithDetail("index", i)
		}
		if line.Quantity < 1 {
			return apperror.New(apperror.CodeInvalidFormat, "quantity must be at least 1").
				WithDetail("field", "quantity").
				WithDetail("index", i)
		}
	}
	return nil
}

func missingField(field string) *apperror.Error {
	return apperror.New(apperror.CodeMissingField, "missing required field: "+field).WithDetail("field", field)
}

func (s *OrderService) publishCreated(ctx context.Context, order *models.Order) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishOrderCreated(ctx, rabbitmq.OrderCreatedEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		TotalPrice: order.TotalPrice,
		ItemCount:  len(order.Items),
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
	})
	if err != nil {
		s.log.Warn(s.log.WithField(ctx, "order_id", order.ID), "order.event.publish_failed", err)
	}
}

// UpdateOrder changes status and/or shipping address.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, in UpdateOrderInput) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "order", id)
	}

	if in.Status != nil {
		if *in.Status < 0 {
			return nil, apperror.New(apperror.CodeInvalidFormat, "status must not be negative").WithDetail("field", "status")
		}
		order.Status = *in.Status
	}
	if in.ShippingAddress != nil {
		address := strings.TrimSpace(*in.ShippingAddress)
		if address == "" {
			return nil, missingField("shippingAddress")
		}
		order.ShippingAddress = address
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, writeError(err, "order", "update")
	}
	return order, nil
}

// DeleteOrder removes the order and its line items.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return lookupError(err, "order", id)
	}
	return nil
}
