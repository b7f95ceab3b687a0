package queries

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrGetOrderTotalQueryIsNotConstructed = errors.New(
	"GetOrderTotalQuery must be created via NewGetOrderTotalQuery constructor",
)

// GetOrderTotalQuery computes the current price of an order.
type GetOrderTotalQuery struct {
	orderID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTotalQuery creates a query for an order's total price.
func NewGetOrderTotalQuery(orderID kernel.UUID, customerID kernel.UUID) (GetOrderTotalQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTotalQuery{}, err
	}
	if err := customerID.Validate(); err != nil {
		return GetOrderTotalQuery{}, err
	}

	return GetOrderTotalQuery{
		orderID:    orderID,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTotalQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTotalQueryIsNotConstructed)
}

// OrderID returns the order being priced.
func (q GetOrderTotalQuery) OrderID() kernel.UUID {
	return q.orderID
}

// CustomerID returns the customer the order must belong to.
func (q GetOrderTotalQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetOrderTotalQueryResponse is the priced order. Total is the amount
// after the attached coupon's discount, if any.
type GetOrderTotalQueryResponse struct {
	OrderID         kernel.UUID
	Total           kernel.Money
	DiscountPercent int
}
