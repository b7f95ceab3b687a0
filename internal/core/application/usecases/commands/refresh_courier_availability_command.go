package commands

import (
	"errors"
	"time"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrRefreshCourierAvailabilityCommandIsNotConstructed = errors.New(
	"RefreshCourierAvailabilityCommand must be created via NewRefreshCourierAvailabilityCommand constructor",
)

// RefreshCourierAvailabilityCommand represents a request to flip back to
// available every courier whose unavailability window has elapsed.
type RefreshCourierAvailabilityCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewRefreshCourierAvailabilityCommand creates an availability sweep
// command evaluated at the given instant.
func NewRefreshCourierAvailabilityCommand(now time.Time) (RefreshCourierAvailabilityCommand, error) {
	if now.IsZero() {
		return RefreshCourierAvailabilityCommand{}, errs.NewValueIsRequiredError("now")
	}

	return RefreshCourierAvailabilityCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefreshCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrRefreshCourierAvailabilityCommandIsNotConstructed)
}

// Now returns the instant the sweep evaluates windows against.
func (c RefreshCourierAvailabilityCommand) Now() time.Time {
	return c.now
}
