// Package rabbitmq publishes order lifecycle events to a RabbitMQ topic
// exchange. Events are fire-and-forget from the customer's perspective:
// they are published after the transaction commits, and a broker outage
// degrades to a logged warning.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pizzeria/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeName = "orders_topic"

// Publisher implements ports.OrderEventPublisher over an AMQP channel.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher dials the broker and declares the durable topic exchange.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch}, nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

type orderStatusChangedMessage struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PublishOrderStatusChanged publishes the event as a persistent JSON
// message routed by status, e.g. "orders.status.paid".
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	body, err := json.Marshal(orderStatusChangedMessage{
		OrderID:    event.OrderID.String(),
		CustomerID: event.CustomerID.String(),
		Status:     event.Status.String(),
		OccurredAt: event.OccurredAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	routingKey := "orders.status." + strings.ToLower(event.Status.String())

	return p.ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// NopPublisher discards events. Used when the broker is not configured,
// so order flows keep working without messaging.
type NopPublisher struct{}

// PublishOrderStatusChanged drops the event.
func (NopPublisher) PublishOrderStatusChanged(context.Context, ports.OrderStatusChanged) error {
	return nil
}
