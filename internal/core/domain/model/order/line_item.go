package order

import (
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

// ErrPizzaLineIsNotConstructed indicates that a PizzaLine was not created
// through its constructor.
var ErrPizzaLineIsNotConstructed = errs.NewValueIsRequiredError(
	"PizzaLine must be created via NewPizzaLine or RestorePizzaLine constructor",
)

// ErrDrinkLineIsNotConstructed indicates that a DrinkLine was not created
// through its constructor.
var ErrDrinkLineIsNotConstructed = errs.NewValueIsRequiredError(
	"DrinkLine must be created via NewDrinkLine or RestoreDrinkLine constructor",
)

// ErrDessertLineIsNotConstructed indicates that a DessertLine was not created
// through its constructor.
var ErrDessertLineIsNotConstructed = errs.NewValueIsRequiredError(
	"DessertLine must be created via NewDessertLine or RestoreDessertLine constructor",
)

// ItemKind identifies which catalog an item reference points into.
type ItemKind int

const (
	// ItemKindUnknown represents an invalid item kind.
	ItemKindUnknown ItemKind = iota

	// ItemKindIngredient references the pizza ingredient catalog.
	ItemKindIngredient

	// ItemKindDrink references the drink catalog.
	ItemKindDrink

	// ItemKindDessert references the dessert catalog.
	ItemKindDessert
)

// String returns the human-readable name of the item kind.
func (k ItemKind) String() string {
	switch k {
	case ItemKindIngredient:
		return "Ingredient"
	case ItemKindDrink:
		return "Drink"
	case ItemKindDessert:
		return "Dessert"
	default:
		return "Unknown"
	}
}

// ItemRef is a typed reference into one of the catalogs. Orders hold catalog
// items by identity only; the reference is resolved against the catalog when
// a line is added and when a total is computed.
type ItemRef struct {
	Kind ItemKind
	ID   kernel.UUID
}

// PizzaLine is one custom pizza on an order, identified by the set of
// ingredients it is built from. The ingredient set is deduplicated: listing
// the same ingredient twice composes the same pizza and charges it once.
//
// A pizza has no quantity. Each PizzaLine is one pizza; two identical pizzas
// are two separate lines.
type PizzaLine struct {
	id            kernel.UUID
	ingredientIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewPizzaLine creates a pizza line from the given ingredient references.
// Duplicate ingredient IDs are collapsed. An empty set is a plain base
// pizza: valid, and free until ingredients are priced in.
func NewPizzaLine(ingredientIDs []kernel.UUID) (*PizzaLine, error) {
	return &PizzaLine{
		id:            kernel.NewUUID(),
		ingredientIDs: dedupeUUIDs(ingredientIDs),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestorePizzaLine reconstructs a pizza line from persistence without
// re-applying business rules.
func RestorePizzaLine(id kernel.UUID, ingredientIDs []kernel.UUID) *PizzaLine {
	return &PizzaLine{
		id:            id,
		ingredientIDs: ingredientIDs,
		guard:         guard.NewConstructorGuard(),
	}
}

// Validate ensures the PizzaLine was constructed through a constructor.
func (p *PizzaLine) Validate() error {
	return p.guard.Validate(ErrPizzaLineIsNotConstructed)
}

// ID returns the line identifier.
func (p *PizzaLine) ID() kernel.UUID {
	return p.id
}

// IngredientIDs returns the deduplicated ingredient references.
func (p *PizzaLine) IngredientIDs() []kernel.UUID {
	result := make([]kernel.UUID, len(p.ingredientIDs))
	copy(result, p.ingredientIDs)
	return result
}

// HasSameIngredients reports whether the given ingredient set composes the
// same pizza as this line, regardless of order.
func (p *PizzaLine) HasSameIngredients(ingredientIDs []kernel.UUID) bool {
	other := dedupeUUIDs(ingredientIDs)
	if len(other) != len(p.ingredientIDs) {
		return false
	}
	for _, id := range other {
		if !containsUUID(p.ingredientIDs, id) {
			return false
		}
	}
	return true
}

// DrinkLine is a quantity-bearing drink entry on an order. Adding the same
// drink again increments the existing line instead of creating a new one.
type DrinkLine struct {
	id       kernel.UUID
	drinkID  kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewDrinkLine creates a drink line with the given starting quantity.
func NewDrinkLine(drinkID kernel.UUID, quantity int) (*DrinkLine, error) {
	if err := drinkID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("drinkID", err)
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxLineQuantity)
	}

	return &DrinkLine{
		id:       kernel.NewUUID(),
		drinkID:  drinkID,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestoreDrinkLine reconstructs a drink line from persistence.
func RestoreDrinkLine(id, drinkID kernel.UUID, quantity int) *DrinkLine {
	return &DrinkLine{
		id:       id,
		drinkID:  drinkID,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}
}

// Validate ensures the DrinkLine was constructed through a constructor.
func (d *DrinkLine) Validate() error {
	return d.guard.Validate(ErrDrinkLineIsNotConstructed)
}

// ID returns the line identifier.
func (d *DrinkLine) ID() kernel.UUID {
	return d.id
}

// DrinkID returns the referenced catalog drink.
func (d *DrinkLine) DrinkID() kernel.UUID {
	return d.drinkID
}

// Quantity returns the current quantity on the line.
func (d *DrinkLine) Quantity() int {
	return d.quantity
}

// Increment raises the quantity by the given amount.
func (d *DrinkLine) Increment(by int) error {
	if by <= 0 {
		return errs.NewValueIsOutOfRangeError("by", by, 1, maxLineQuantity)
	}
	if d.quantity+by > maxLineQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", d.quantity+by, 1, maxLineQuantity)
	}
	d.quantity += by
	return nil
}

// Decrement lowers the quantity by one. It returns the remaining quantity;
// when it reaches zero the owning order removes the line entirely.
func (d *DrinkLine) Decrement() int {
	if d.quantity > 0 {
		d.quantity--
	}
	return d.quantity
}

// DessertLine is a quantity-bearing dessert entry on an order. It behaves
// exactly like DrinkLine but references the dessert catalog.
type DessertLine struct {
	id        kernel.UUID
	dessertID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewDessertLine creates a dessert line with the given starting quantity.
func NewDessertLine(dessertID kernel.UUID, quantity int) (*DessertLine, error) {
	if err := dessertID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("dessertID", err)
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxLineQuantity)
	}

	return &DessertLine{
		id:        kernel.NewUUID(),
		dessertID: dessertID,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreDessertLine reconstructs a dessert line from persistence.
func RestoreDessertLine(id, dessertID kernel.UUID, quantity int) *DessertLine {
	return &DessertLine{
		id:        id,
		dessertID: dessertID,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}
}

// Validate ensures the DessertLine was constructed through a constructor.
func (d *DessertLine) Validate() error {
	return d.guard.Validate(ErrDessertLineIsNotConstructed)
}

// ID returns the line identifier.
func (d *DessertLine) ID() kernel.UUID {
	return d.id
}

// DessertID returns the referenced catalog dessert.
func (d *DessertLine) DessertID() kernel.UUID {
	return d.dessertID
}

// Quantity returns the current quantity on the line.
func (d *DessertLine) Quantity() int {
	return d.quantity
}

// Increment raises the quantity by the given amount.
func (d *DessertLine) Increment(by int) error {
	if by <= 0 {
		return errs.NewValueIsOutOfRangeError("by", by, 1, maxLineQuantity)
	}
	if d.quantity+by > maxLineQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", d.quantity+by, 1, maxLineQuantity)
	}
	d.quantity += by
	return nil
}

// Decrement lowers the quantity by one and returns the remaining quantity.
func (d *DessertLine) Decrement() int {
	if d.quantity > 0 {
		d.quantity--
	}
	return d.quantity
}

// maxLineQuantity caps a single drink or dessert line. The cap guards
// against fat-finger input; large orders use multiple lines.
const maxLineQuantity = 100

func dedupeUUIDs(ids []kernel.UUID) []kernel.UUID {
	result := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if id.Validate() != nil {
			continue
		}
		if !containsUUID(result, id) {
			result = append(result, id)
		}
	}
	return result
}

func containsUUID(ids []kernel.UUID, id kernel.UUID) bool {
	for _, existing := range ids {
		if existing.IsEqual(id) {
			return true
		}
	}
	return false
}
