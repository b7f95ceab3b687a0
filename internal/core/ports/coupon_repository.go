package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/coupon"
	"pizzeria/internal/core/domain/model/kernel"
)

// CouponRepository defines the persistence contract for coupon aggregates.
type CouponRepository interface {
	// Add persists a newly granted coupon. The code column carries a
	// unique constraint, so concurrent grants of the same deterministic
	// code cannot both succeed.
	Add(ctx context.Context, aggregate *coupon.Coupon) error

	// Get retrieves a coupon by its ID, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*coupon.Coupon, error)

	// GetByCode retrieves a coupon by its unique code, or
	// errs.ErrObjectNotFound when no such code exists.
	GetByCode(ctx context.Context, code string) (*coupon.Coupon, error)

	// GetAllByCustomer retrieves every coupon granted to the customer,
	// soonest expiry first, never-expiring coupons last.
	GetAllByCustomer(ctx context.Context, customerID kernel.UUID) ([]*coupon.Coupon, error)

	// ExistsByCode reports whether a coupon with the given code exists.
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// CountLoyaltyByCustomer counts the loyalty coupons ever granted to
	// the customer, redeemed ones included.
	CountLoyaltyByCustomer(ctx context.Context, customerID kernel.UUID) (int, error)

	// Redeem atomically marks the coupon redeemed. The store performs a
	// compare-and-set on the redeemed flag: exactly one of any set of
	// concurrent callers reports changed=true, the rest see false with no
	// error. A missing coupon is errs.ErrObjectNotFound.
	Redeem(ctx context.Context, id kernel.UUID) (bool, error)
}
