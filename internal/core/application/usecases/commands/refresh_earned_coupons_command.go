package commands

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrRefreshEarnedCouponsCommandIsNotConstructed = errors.New(
	"RefreshEarnedCouponsCommand must be created via NewRefreshEarnedCouponsCommand constructor",
)

// RefreshEarnedCouponsCommand represents a request to grant the customer
// every coupon they have earned but not yet received: the welcome coupon,
// this year's birthday coupon, and any outstanding loyalty coupons. The
// sweep is idempotent thanks to deterministic coupon codes.
type RefreshEarnedCouponsCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	birthDate  *time.Time
	now        time.Time

	guard guard.ConstructorGuard
}

// NewRefreshEarnedCouponsCommand creates a coupon issuance command.
// birthDate may be nil when the customer has no birth date on file; the
// birthday grant is then skipped.
func NewRefreshEarnedCouponsCommand(
	customerID kernel.UUID,
	birthDate *time.Time,
	now time.Time,
) (RefreshEarnedCouponsCommand, error) {
	command := RefreshEarnedCouponsCommand{
		birthDate: birthDate,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomerID(customerID),
		command.setNow(now),
	); err != nil {
		return RefreshEarnedCouponsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RefreshEarnedCouponsCommand) Validate() error {
	return c.guard.Validate(ErrRefreshEarnedCouponsCommandIsNotConstructed)
}

// CustomerID returns the customer the sweep runs for.
func (c RefreshEarnedCouponsCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// BirthDate returns the customer's birth date, or nil when unknown.
func (c RefreshEarnedCouponsCommand) BirthDate() *time.Time {
	return c.birthDate
}

// Now returns the instant the sweep evaluates grants against.
func (c RefreshEarnedCouponsCommand) Now() time.Time {
	return c.now
}

func (c *RefreshEarnedCouponsCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *RefreshEarnedCouponsCommand) setNow(now time.Time) error {
	if now.IsZero() {
		return errs.NewValueIsRequiredError("now")
	}

	c.now = now
	return nil
}
