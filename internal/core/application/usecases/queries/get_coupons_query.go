package queries

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrGetCouponsQueryIsNotConstructed = errors.New(
	"GetCouponsQuery must be created via NewGetCouponsQuery constructor",
)

// GetCouponsQuery lists a customer's coupons, soonest expiry first.
type GetCouponsQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCouponsQuery creates a query for a customer's coupon wallet.
func NewGetCouponsQuery(customerID kernel.UUID) (GetCouponsQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCouponsQuery{}, err
	}

	return GetCouponsQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCouponsQuery) Validate() error {
	return q.guard.Validate(ErrGetCouponsQueryIsNotConstructed)
}

// CustomerID returns the customer whose coupons are requested.
func (q GetCouponsQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetCouponsQueryResponse is one coupon in the wallet listing.
// ExpiresAt is nil for coupons that never expire.
type GetCouponsQueryResponse struct {
	ID              kernel.UUID
	Code            string
	DiscountPercent int
	ExpiresAt       *time.Time
	Redeemed        bool
}
