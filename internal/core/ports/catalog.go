package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
)

// CatalogReader provides read access to the ingredient, drink, and dessert
// catalogs. The catalog is reference data: it is never mutated by the
// order-fulfillment flows.
type CatalogReader interface {
	// Exists reports whether the referenced catalog item exists.
	// Line items are validated against the catalog when added.
	Exists(ctx context.Context, ref order.ItemRef) (bool, error)

	// PricesFor loads a pure price snapshot covering every catalog item
	// the order references. The snapshot feeds the pricing service.
	PricesFor(ctx context.Context, aggregate *order.Order) (services.PriceSource, error)
}
