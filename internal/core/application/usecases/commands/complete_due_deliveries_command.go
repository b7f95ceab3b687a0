package commands

import (
	"errors"
	"time"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrCompleteDueDeliveriesCommandIsNotConstructed = errors.New(
	"CompleteDueDeliveriesCommand must be created via NewCompleteDueDeliveriesCommand constructor",
)

// CompleteDueDeliveriesCommand represents a request to mark Delivered every
// paid order whose delivery countdown has elapsed.
type CompleteDueDeliveriesCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewCompleteDueDeliveriesCommand creates a delivery completion sweep
// command evaluated at the given instant.
func NewCompleteDueDeliveriesCommand(now time.Time) (CompleteDueDeliveriesCommand, error) {
	if now.IsZero() {
		return CompleteDueDeliveriesCommand{}, errs.NewValueIsRequiredError("now")
	}

	return CompleteDueDeliveriesCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDueDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDueDeliveriesCommandIsNotConstructed)
}

// Now returns the instant the sweep evaluates countdowns against.
func (c CompleteDueDeliveriesCommand) Now() time.Time {
	return c.now
}
