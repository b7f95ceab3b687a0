package orderrepo

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its line items. A partial unique index on
// (customer_id) WHERE status = Pending backs the one-basket-per-customer
// rule, so a concurrent duplicate insert fails here.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order. Line items are replaced wholesale:
// deleting the line rows cascades to pizza ingredient links, then the
// aggregate's current lines are reinserted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Omit(clause.Associations).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.deleteLines(ctx, dto.ID); err != nil {
		return err
	}

	if len(dto.Pizzas) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Pizzas).Error; err != nil {
			return err
		}
	}
	if len(dto.Drinks) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Drinks).Error; err != nil {
			return err
		}
	}
	if len(dto.Desserts) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Desserts).Error; err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves an order with all of its line items.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingByCustomer retrieves the customer's single Pending order.
func (r *GormOrderRepository) GetPendingByCustomer(
	ctx context.Context,
	customerID kernel.UUID,
) (*order.Order, error) {
	return r.getByCustomerAndStatus(ctx, customerID, order.Pending)
}

// GetConfirmedByCustomer retrieves the customer's single Confirmed order.
func (r *GormOrderRepository) GetConfirmedByCustomer(
	ctx context.Context,
	customerID kernel.UUID,
) (*order.Order, error) {
	return r.getByCustomerAndStatus(ctx, customerID, order.Confirmed)
}

// GetAllByCustomer retrieves the customer's order history, newest first.
func (r *GormOrderRepository) GetAllByCustomer(
	ctx context.Context,
	customerID kernel.UUID,
) ([]*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.preloaded(ctx).
		Where("customer_id = ?", customerID.Bytes()).
		Order("placed_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllPaidDueBy retrieves paid orders whose delivery countdown has elapsed.
func (r *GormOrderRepository) GetAllPaidDueBy(ctx context.Context, now time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.preloaded(ctx).
		Where("status = ? AND delivery_at IS NOT NULL AND delivery_at <= ?", int(order.Paid), now).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// Delete removes an order. The line rows and ingredient links go with it
// via foreign key cascades.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.deleteLines(ctx, id.Bytes()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}

func (r *GormOrderRepository) getByCustomerAndStatus(
	ctx context.Context,
	customerID kernel.UUID,
	status order.Status,
) (*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.preloaded(ctx).
		First(&dto, "customer_id = ? AND status = ?", customerID.Bytes(), int(status)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", customerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Pizzas.Ingredients").
		Preload("Drinks").
		Preload("Desserts")
}

func (r *GormOrderRepository) deleteLines(ctx context.Context, orderID [16]byte) error {
	if err := r.db.WithContext(ctx).Delete(&PizzaLineDTO{}, "order_id = ?", orderID).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&DrinkLineDTO{}, "order_id = ?", orderID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&DessertLineDTO{}, "order_id = ?", orderID).Error
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
