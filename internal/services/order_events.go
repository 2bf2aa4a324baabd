package services

import (
	"context"

	"storefront/pkg/logger"
	"storefront/pkg/rabbitmq"
)

// LogOrderEvents returns a consumer handler that records each order.created
// event in the structured log.
func LogOrderEvents(log *logger.Logger) rabbitmq.OrderEventHandler {
	return func(ctx context.Context, event rabbitmq.OrderCreatedEvent) error {
		ctx = log.WithFields(ctx, map[string]any{
			"order_id":    event.OrderID,
			"customer_id": event.CustomerID,
			"total_price": event.TotalPrice,
			"item_count":  event.ItemCount,
		})
		log.Info(ctx, "order.created.received")
		return nil
	}
}
