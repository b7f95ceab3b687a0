package services

import (
	"time"

	"pizzeria/internal/core/domain/model/courier"
	"pizzeria/internal/pkg/errs"
)

// ErrNoAvailableCourier is returned when no courier linked to the delivery
// postal code can take the order.
var ErrNoAvailableCourier = errs.NewValueIsInvalidError("no courier is available for the postal code")

// CourierDispatcher assigns couriers to paid orders. Candidate couriers are
// supplied by the caller, already scoped to the delivery postal code and
// locked for the duration of the transaction.
type CourierDispatcher struct{}

// NewCourierDispatcher creates the dispatch domain service.
func NewCourierDispatcher() *CourierDispatcher {
	return &CourierDispatcher{}
}

// Dispatch books the first available candidate for a delivery ending at
// deliveryAt. Candidates are tried in the order given, which the repository
// keeps deterministic, so concurrent payments against the same pool resolve
// the same way.
func (d *CourierDispatcher) Dispatch(
	candidates []*courier.Courier,
	deliveryAt time.Time,
) (*courier.Courier, error) {
	for _, candidate := range candidates {
		if !candidate.IsAvailable() {
			continue
		}
		if err := candidate.Book(deliveryAt); err != nil {
			return nil, err
		}
		return candidate, nil
	}

	return nil, ErrNoAvailableCourier
}
