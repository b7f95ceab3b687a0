package services

import (
	"pizzeria/internal/core/domain/model/coupon"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
)

// PriceSource resolves catalog item prices for one pricing computation.
// Implementations must be pure snapshots: two calls with the same ID return
// the same price, so recomputing a total is deterministic.
type PriceSource interface {
	IngredientPrice(id kernel.UUID) (kernel.Money, bool)
	DrinkPrice(id kernel.UUID) (kernel.Money, bool)
	DessertPrice(id kernel.UUID) (kernel.Money, bool)
}

// StaticPriceSource is an in-memory PriceSource built from price maps. The
// persistence layer loads one per computation; tests build them directly.
type StaticPriceSource struct {
	Ingredients map[kernel.UUID]kernel.Money
	Drinks      map[kernel.UUID]kernel.Money
	Desserts    map[kernel.UUID]kernel.Money
}

// IngredientPrice returns the price of a pizza ingredient.
func (s StaticPriceSource) IngredientPrice(id kernel.UUID) (kernel.Money, bool) {
	price, ok := s.Ingredients[id]
	return price, ok
}

// DrinkPrice returns the price of a drink.
func (s StaticPriceSource) DrinkPrice(id kernel.UUID) (kernel.Money, bool) {
	price, ok := s.Drinks[id]
	return price, ok
}

// DessertPrice returns the price of a dessert.
func (s StaticPriceSource) DessertPrice(id kernel.UUID) (kernel.Money, bool) {
	price, ok := s.Desserts[id]
	return price, ok
}

// PricingService computes order totals. Totals are never stored: they are
// recomputed from the order's lines, the catalog prices, and the attached
// coupon every time one is needed.
type PricingService struct{}

// NewPricingService creates the pricing domain service.
func NewPricingService() *PricingService {
	return &PricingService{}
}

// ComputeTotal prices the order against the given catalog snapshot.
//
// A pizza costs the sum of its distinct ingredients. Drinks and desserts
// cost their unit price times quantity. When a coupon is supplied its
// whole-number percentage discount applies to the order total, not to
// individual lines. An empty order totals zero.
func (s *PricingService) ComputeTotal(
	o *order.Order,
	prices PriceSource,
	cpn *coupon.Coupon,
) (kernel.Money, error) {
	if err := o.Validate(); err != nil {
		return kernel.Money{}, err
	}

	var total kernel.Money

	for _, pizza := range o.Pizzas() {
		for _, ingredientID := range pizza.IngredientIDs() {
			price, ok := prices.IngredientPrice(ingredientID)
			if !ok {
				return kernel.Money{}, errs.NewObjectNotFoundError("ingredient", ingredientID.String())
			}
			total = total.Add(price)
		}
	}

	for _, drink := range o.Drinks() {
		price, ok := prices.DrinkPrice(drink.DrinkID())
		if !ok {
			return kernel.Money{}, errs.NewObjectNotFoundError("drink", drink.DrinkID().String())
		}
		total = total.Add(price.MulInt(drink.Quantity()))
	}

	for _, dessert := range o.Desserts() {
		price, ok := prices.DessertPrice(dessert.DessertID())
		if !ok {
			return kernel.Money{}, errs.NewObjectNotFoundError("dessert", dessert.DessertID().String())
		}
		total = total.Add(price.MulInt(dessert.Quantity()))
	}

	if cpn != nil {
		total = total.ApplyDiscountPercent(cpn.DiscountPercent())
	}

	return total, nil
}
