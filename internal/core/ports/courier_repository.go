package ports

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/courier"
	"pizzeria/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates
// and their postal-code links.
type CourierRepository interface {
	// Add persists a newly hired courier.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetLinkedForUpdate retrieves every courier linked to the postal
	// code, ordered deterministically, with their rows locked until the
	// surrounding transaction ends. Dispatch candidates come from here.
	GetLinkedForUpdate(ctx context.Context, postalCode string) ([]*courier.Courier, error)

	// LinkPostalCode links a courier to a postal code it serves.
	// Linking an already linked pair is a no-op.
	LinkPostalCode(ctx context.Context, courierID kernel.UUID, postalCode string) error

	// GetAllDueForRefresh retrieves unavailable couriers whose
	// unavailability window has elapsed at the given instant.
	GetAllDueForRefresh(ctx context.Context, now time.Time) ([]*courier.Courier, error)
}
