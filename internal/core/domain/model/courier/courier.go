package courier

import (
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)


// ErrCourierIsNotConstructed indicates that a Courier was not created
// through NewCourier or RestoreCourier.
var ErrCourierIsNotConstructed = errs.NewValueIsRequiredError(
	"Courier must be created via NewCourier or RestoreCourier constructor",
)

// ErrCourierUnavailable is returned when booking a courier that is out on a
// delivery.
var ErrCourierUnavailable = errs.NewValueIsInvalidError("courier is unavailable")

// Courier delivers orders within the postal codes it is linked to. A
// courier handles one delivery at a time: booking flips availability off
// until the delivery is due.
type Courier struct {
	id               kernel.UUID
	name             string
	available        bool
	unavailableUntil *time.Time

	guard guard.ConstructorGuard
}

// NewCourier hires a new courier, immediately available for work.
func NewCourier(name string) (*Courier, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Courier{
		id:        kernel.NewUUID(),
		name:      name,
		available: true,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreCourier reconstructs a courier from persistence.
func RestoreCourier(id kernel.UUID, name string, available bool, unavailableUntil *time.Time) *Courier {
	return &Courier{
		id:               id,
		name:             name,
		available:        available,
		unavailableUntil: unavailableUntil,
		guard:            guard.NewConstructorGuard(),
	}
}

// Validate ensures the Courier was constructed through a constructor.
func (c *Courier) Validate() error {
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// IsAvailable reports whether the courier can take a delivery right now.
func (c *Courier) IsAvailable() bool {
	return c.available
}

// UnavailableUntil returns when the courier becomes bookable again, or nil
// when the courier is available.
func (c *Courier) UnavailableUntil() *time.Time {
	return c.unavailableUntil
}

// Book assigns the courier to a delivery ending at deliveryAt. The courier
// stays unavailable until the delivery is due.
func (c *Courier) Book(deliveryAt time.Time) error {
	if !c.available {
		return ErrCourierUnavailable
	}

	until := deliveryAt.UTC()

	c.available = false
	c.unavailableUntil = &until
	return nil
}

// RefreshAvailability flips the courier back to available once the
// unavailability window has elapsed. It returns true when the state
// changed, so repeated sweeps over the same courier stay idempotent.
func (c *Courier) RefreshAvailability(now time.Time) bool {
	if c.available || c.unavailableUntil == nil {
		return false
	}
	if c.unavailableUntil.After(now) {
		return false
	}

	c.available = true
	c.unavailableUntil = nil
	return true
}
