package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/multierr"

	"storefront/pkg/logger"
)

// OrderQueue is the durable queue carrying order.created events.
const OrderQueue = "order_events"

// OrderCreatedEvent is published once per persisted order.
type OrderCreatedEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	TotalPrice float64   `json:"total_price"`
	ItemCount  int       `json:"item_count"`
	Status     int       `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

const eventTypeOrderCreated = "order.created"

// OrderEventHandler processes one decoded event. Returning an error requeues
// the delivery once; a second failure drops it.
type OrderEventHandler func(ctx context.Context, event OrderCreatedEvent) error

// Client holds the RabbitMQ connection and its publishing channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
	log     *logger.Logger
}

// NewClient dials url, opens a channel and declares OrderQueue.
func NewClient(url string, log *logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.Nop()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to open channel: %w", err), conn.Close())
	}

	if err := declareQueue(ch); err != nil {
		return nil, multierr.Combine(err, ch.Close(), conn.Close())
	}

	log.Info(context.Background(), "rabbitmq.connected")
	return &Client{conn: conn, channel: ch, log: log}, nil
}

func declareQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		OrderQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", OrderQueue, err)
	}
	return nil
}

// Close closes the channel and the connection.
func (c *Client) Close() error {
	var err error
	if c.channel != nil {
		if cerr := c.channel.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close channel: %w", cerr))
		}
	}
	if c.conn != nil {
		if cerr := c.conn.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close connection: %w", cerr))
		}
	}
	return err
}

// PublishOrderCreated publishes event as persistent JSON on OrderQueue.
func (c *Client) PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error {
	if c.channel == nil {
		return errors.New("rabbitmq channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	event.Type = eventTypeOrderCreated
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",         // default exchange
		OrderQueue, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         eventTypeOrderCreated,
			MessageId:    event.OrderID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}

// ConsumeOrderEvents consumes OrderQueue on its own channel until ctx is
// cancelled or the broker closes the delivery stream.
func (c *Client) ConsumeOrderEvents(ctx context.Context, handler OrderEventHandler) error {
	if c.conn == nil {
		return errors.New("rabbitmq connection is not available")
	}
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open consumer channel: %w", err)
	}
	defer ch.Close()

	if err := declareQueue(ch); err != nil {
		return err
	}
	msgs, err := ch.Consume(
		OrderQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.Info(ctx, "rabbitmq.consumer.started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			c.handleDelivery(ctx, msg, handler)
		}
	}
}

func (c *Client) handleDelivery(ctx context.Context, msg amqp.Delivery, handler OrderEventHandler) {
	log := c.log
	if log == nil {
		log = logger.Nop()
	}

	var event OrderCreatedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Warn(ctx, "rabbitmq.delivery.malformed", err)
		if nackErr := msg.Nack(false, false); nackErr != nil {
			log.Error(ctx, "rabbitmq.nack.failed", nackErr)
		}
		return
	}

	if err := handler(ctx, event); err != nil {
		requeue := !msg.Redelivered
		log.Warn(log.WithField(ctx, "requeue", requeue), "rabbitmq.delivery.failed", err)
		if nackErr := msg.Nack(false, requeue); nackErr != nil {
			log.Error(ctx, "rabbitmq.nack.failed", nackErr)
		}
		return
	}

	if ackErr := msg.Ack(false); ackErr != nil {
		log.Error(ctx, "rabbitmq.ack.failed", ackErr)
	}
}
