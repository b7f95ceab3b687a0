package catalogrepo

import (
	"context"
	"fmt"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalogRepository implements ports.CatalogReader using GORM.
// Catalog reads run outside command transactions: reference data does not
// participate in the order-fulfillment write sets.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// Exists reports whether the referenced catalog item exists.
func (r *GormCatalogRepository) Exists(ctx context.Context, ref order.ItemRef) (bool, error) {
	if err := ref.ID.Validate(); err != nil {
		return false, err
	}

	var model any
	switch ref.Kind {
	case order.ItemKindIngredient:
		model = &IngredientDTO{}
	case order.ItemKindDrink:
		model = &DrinkDTO{}
	case order.ItemKindDessert:
		model = &DessertDTO{}
	default:
		return false, errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("unknown catalog item kind: %d", ref.Kind))
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", ref.ID.Bytes()).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// PricesFor loads a price snapshot covering every catalog item the order
// references. Items missing from the catalog are simply absent from the
// snapshot; the pricing service reports them as not found.
func (r *GormCatalogRepository) PricesFor(
	ctx context.Context,
	aggregate *order.Order,
) (services.PriceSource, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	source := services.StaticPriceSource{
		Ingredients: make(map[kernel.UUID]kernel.Money),
		Drinks:      make(map[kernel.UUID]kernel.Money),
		Desserts:    make(map[kernel.UUID]kernel.Money),
	}

	ingredientIDs := make([]uuid.UUID, 0)
	for _, p := range aggregate.Pizzas() {
		for _, id := range p.IngredientIDs() {
			ingredientIDs = append(ingredientIDs, id.Bytes())
		}
	}
	if err := r.loadPrices(ctx, &IngredientDTO{}, ingredientIDs, source.Ingredients); err != nil {
		return nil, err
	}

	drinkIDs := make([]uuid.UUID, 0, len(aggregate.Drinks()))
	for _, d := range aggregate.Drinks() {
		drinkIDs = append(drinkIDs, d.DrinkID().Bytes())
	}
	if err := r.loadPrices(ctx, &DrinkDTO{}, drinkIDs, source.Drinks); err != nil {
		return nil, err
	}

	dessertIDs := make([]uuid.UUID, 0, len(aggregate.Desserts()))
	for _, d := range aggregate.Desserts() {
		dessertIDs = append(dessertIDs, d.DessertID().Bytes())
	}
	if err := r.loadPrices(ctx, &DessertDTO{}, dessertIDs, source.Desserts); err != nil {
		return nil, err
	}

	return source, nil
}

type priceRow struct {
	ID         uuid.UUID
	PriceCents int64
}

func (r *GormCatalogRepository) loadPrices(
	ctx context.Context,
	model any,
	ids []uuid.UUID,
	into map[kernel.UUID]kernel.Money,
) error {
	if len(ids) == 0 {
		return nil
	}

	var rows []priceRow
	if err := r.db.WithContext(ctx).
		Model(model).
		Select("id", "price_cents").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return err
	}

	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return err
		}
		into[id] = kernel.NewMoneyFromCents(row.PriceCents)
	}

	return nil
}
