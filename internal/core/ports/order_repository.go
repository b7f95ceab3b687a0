package ports

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and lifecycle state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Fails when the customer already has a Pending order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate,
	// including its full set of line items.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with all of its line items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetPendingByCustomer retrieves the customer's single Pending order,
	// or errs.ErrObjectNotFound when there is none.
	GetPendingByCustomer(ctx context.Context, customerID kernel.UUID) (*order.Order, error)

	// GetConfirmedByCustomer retrieves the customer's single Confirmed
	// order, or errs.ErrObjectNotFound when there is none.
	GetConfirmedByCustomer(ctx context.Context, customerID kernel.UUID) (*order.Order, error)

	// GetAllByCustomer retrieves the customer's full order history,
	// newest first.
	GetAllByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// GetAllPaidDueBy retrieves paid orders whose delivery countdown has
	// elapsed at the given instant. Used by the completion sweep.
	GetAllPaidDueBy(ctx context.Context, now time.Time) ([]*order.Order, error)

	// Delete removes an order and its line items from storage.
	Delete(ctx context.Context, id kernel.UUID) error
}
