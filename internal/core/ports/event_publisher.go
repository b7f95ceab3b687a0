package ports

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
)

// OrderStatusChanged is the integration event emitted after an order
// transitions to a new status. It carries identifiers only; consumers
// fetch details through the API.
type OrderStatusChanged struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	Status     order.Status
	OccurredAt time.Time
}

// OrderEventPublisher publishes order lifecycle events to the message
// broker. Publishing happens after the transaction commits; a publish
// failure is logged, never propagated to the customer flow.
type OrderEventPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChanged) error
}
