package queries

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrTrackDeliveryQueryIsNotConstructed = errors.New(
		"TrackDeliveryQuery must be created via NewTrackDeliveryQuery constructor",
	)

	// ErrDeliveryNotStarted is returned when the order exists but has not
	// been paid yet, so there is no delivery to track.
	ErrDeliveryNotStarted = errors.New("delivery has not started for this order")
)

// TrackDeliveryQuery asks for the delivery progress of a single paid order.
type TrackDeliveryQuery struct {
	orderID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTrackDeliveryQuery creates a query tracking one order's delivery.
func NewTrackDeliveryQuery(orderID kernel.UUID, customerID kernel.UUID) (TrackDeliveryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return TrackDeliveryQuery{}, err
	}
	if err := customerID.Validate(); err != nil {
		return TrackDeliveryQuery{}, err
	}

	return TrackDeliveryQuery{
		orderID:    orderID,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrTrackDeliveryQueryIsNotConstructed)
}

// OrderID returns the order being tracked.
func (q TrackDeliveryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// CustomerID returns the customer the order must belong to.
func (q TrackDeliveryQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// TrackDeliveryQueryResponse reports how far along a delivery is.
// RemainingSeconds is zero once the order has been delivered.
type TrackDeliveryQueryResponse struct {
	OrderID          kernel.UUID
	Status           string
	CourierName      string
	DeliveryAt       time.Time
	RemainingSeconds int64
}
