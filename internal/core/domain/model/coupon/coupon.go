package coupon

import (
	"fmt"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

const (
	// WelcomeDiscountPercent is granted once per customer on sign-up.
	WelcomeDiscountPercent = 5

	// BirthdayDiscountPercent is granted around the customer's birthday.
	BirthdayDiscountPercent = 15

	// LoyaltyDiscountPercent is granted per ten pizzas ordered.
	LoyaltyDiscountPercent = 10

	// WelcomeValidity is how long a welcome coupon stays redeemable.
	WelcomeValidity = 365 * 24 * time.Hour

	// BirthdayValidity is how long a birthday coupon stays redeemable.
	BirthdayValidity = 3 * 24 * time.Hour

	// LoyaltyValidity is how long a loyalty coupon stays redeemable.
	LoyaltyValidity = 365 * 24 * time.Hour

	// LoyaltyThreshold is the number of pizzas that earns one loyalty coupon.
	LoyaltyThreshold = 10
)

// ErrCouponIsNotConstructed indicates that a Coupon was not created through
// a constructor.
var ErrCouponIsNotConstructed = errs.NewValueIsRequiredError(
	"Coupon must be created via a New*Coupon or RestoreCoupon constructor",
)

// ErrCouponNotFound is returned when a coupon code does not exist or does
// not belong to the requesting customer. The two cases are deliberately
// indistinguishable so codes cannot be probed.
var ErrCouponNotFound = errs.NewObjectNotFoundError("coupon", "code")

// ErrCouponAlreadyRedeemed is returned when redeeming a spent coupon.
var ErrCouponAlreadyRedeemed = errs.NewValueIsInvalidError("coupon is already redeemed")

// ErrCouponExpired is returned when redeeming a coupon past its expiry date.
var ErrCouponExpired = errs.NewValueIsInvalidError("coupon is expired")

// Coupon is a single-use, customer-bound discount. A coupon stays valid
// through its expiry date and becomes unusable the day after. Redemption is
// permanent: a redeemed coupon never becomes available again, even when the
// order it was used on is later deleted.
type Coupon struct {
	id              kernel.UUID
	customerID      kernel.UUID
	code            string
	discountPercent int
	expiresAt       *time.Time
	redeemed        bool

	guard guard.ConstructorGuard
}

// WelcomeCode derives the deterministic code of a customer's welcome coupon.
func WelcomeCode(customerID kernel.UUID) string {
	return fmt.Sprintf("WELCOME-%s", customerID)
}

// BirthdayCode derives the deterministic code of a customer's birthday
// coupon for the given year. The year suffix makes the grant repeatable
// annually while staying idempotent within one year.
func BirthdayCode(customerID kernel.UUID, year int) string {
	return fmt.Sprintf("BDAY-%s-%d", customerID, year)
}

// LoyaltyCode derives the deterministic code of a customer's n-th loyalty
// coupon. The sequence number starts at 1.
func LoyaltyCode(customerID kernel.UUID, seq int) string {
	return fmt.Sprintf("LOYALTY-%s-%d", customerID, seq)
}

// NewWelcomeCoupon creates the one-off sign-up coupon for a customer.
func NewWelcomeCoupon(customerID kernel.UUID, now time.Time) (*Coupon, error) {
	return newCoupon(customerID, WelcomeCode(customerID), WelcomeDiscountPercent, now, WelcomeValidity)
}

// NewBirthdayCoupon creates this year's birthday coupon for a customer.
func NewBirthdayCoupon(customerID kernel.UUID, now time.Time) (*Coupon, error) {
	return newCoupon(customerID, BirthdayCode(customerID, now.UTC().Year()),
		BirthdayDiscountPercent, now, BirthdayValidity)
}

// NewLoyaltyCoupon creates the seq-th loyalty coupon for a customer.
func NewLoyaltyCoupon(customerID kernel.UUID, seq int, now time.Time) (*Coupon, error) {
	if seq <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("seq", seq, 1, "unbounded")
	}
	return newCoupon(customerID, LoyaltyCode(customerID, seq), LoyaltyDiscountPercent, now, LoyaltyValidity)
}

func newCoupon(
	customerID kernel.UUID,
	code string,
	discountPercent int,
	now time.Time,
	validity time.Duration,
) (*Coupon, error) {
	if err := customerID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}

	expiresAt := now.UTC().Add(validity)

	return &Coupon{
		id:              kernel.NewUUID(),
		customerID:      customerID,
		code:            code,
		discountPercent: discountPercent,
		expiresAt:       &expiresAt,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// RestoreCoupon reconstructs a coupon from persistence without re-applying
// business rules.
func RestoreCoupon(
	id kernel.UUID,
	customerID kernel.UUID,
	code string,
	discountPercent int,
	expiresAt *time.Time,
	redeemed bool,
) *Coupon {
	return &Coupon{
		id:              id,
		customerID:      customerID,
		code:            code,
		discountPercent: discountPercent,
		expiresAt:       expiresAt,
		redeemed:        redeemed,
		guard:           guard.NewConstructorGuard(),
	}
}

// Validate ensures the Coupon was constructed through a constructor.
func (c *Coupon) Validate() error {
	return c.guard.Validate(ErrCouponIsNotConstructed)
}

// ID returns the coupon identifier.
func (c *Coupon) ID() kernel.UUID {
	return c.id
}

// CustomerID returns the owning customer.
func (c *Coupon) CustomerID() kernel.UUID {
	return c.customerID
}

// Code returns the unique coupon code.
func (c *Coupon) Code() string {
	return c.code
}

// DiscountPercent returns the whole-number discount percentage.
func (c *Coupon) DiscountPercent() int {
	return c.discountPercent
}

// ExpiresAt returns the expiry instant, or nil when the coupon never expires.
func (c *Coupon) ExpiresAt() *time.Time {
	return c.expiresAt
}

// IsRedeemed reports whether the coupon was already spent.
func (c *Coupon) IsRedeemed() bool {
	return c.redeemed
}

// IsExpired reports whether the coupon is past its expiry. A coupon is
// still usable on the expiry day itself and expires the day after.
func (c *Coupon) IsExpired(today time.Time) bool {
	if c.expiresAt == nil {
		return false
	}
	expiryDay := truncateToDay(*c.expiresAt)
	return expiryDay.Before(truncateToDay(today))
}

// ValidateFor checks that the coupon can be applied by the given customer
// on the given day. A coupon belonging to another customer reports
// ErrCouponNotFound, never that it exists.
func (c *Coupon) ValidateFor(customerID kernel.UUID, today time.Time) error {
	if !c.customerID.IsEqual(customerID) {
		return ErrCouponNotFound
	}
	if c.redeemed {
		return ErrCouponAlreadyRedeemed
	}
	if c.IsExpired(today) {
		return ErrCouponExpired
	}
	return nil
}

// Redeem marks the coupon spent. The persistence layer performs the
// atomic compare-and-set; this mirrors the state change on the aggregate.
func (c *Coupon) Redeem() error {
	if c.redeemed {
		return ErrCouponAlreadyRedeemed
	}
	c.redeemed = true
	return nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
