// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly and return plain response
// structs, bypassing the aggregate layer.
package queries

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves a customer's full order history,
// newest first.
type GetOrderHistoryQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for a customer's order history.
func NewGetOrderHistoryQuery(customerID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return GetOrderHistoryQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// CustomerID returns the customer whose history is requested.
func (q GetOrderHistoryQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetOrderHistoryQueryResponse is one order in the history listing.
type GetOrderHistoryQueryResponse struct {
	ID         kernel.UUID
	Status     string
	PlacedAt   time.Time
	DeliveryAt *time.Time
}
