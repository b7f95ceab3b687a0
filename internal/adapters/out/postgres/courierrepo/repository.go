package courierrepo

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/courier"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Add saves a newly hired courier.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing courier.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetLinkedForUpdate retrieves every courier linked to the postal code,
// ordered by ID so concurrent payers lock rows in the same order, with
// FOR UPDATE OF couriers held until the surrounding transaction ends.
func (r *GormCourierRepository) GetLinkedForUpdate(
	ctx context.Context,
	postalCode string,
) ([]*courier.Courier, error) {
	if postalCode == "" {
		return nil, errs.NewValueIsRequiredError("postalCode")
	}

	var dtos []CourierDTO
	if err := r.db.WithContext(ctx).
		Table("couriers").
		Select("couriers.*").
		Joins("JOIN postal_assignments ON postal_assignments.courier_id = couriers.id").
		Where("postal_assignments.postal_code = ?", postalCode).
		Order("couriers.id").
		Clauses(clause.Locking{
			Strength: "UPDATE",
			Table:    clause.Table{Name: "couriers"},
		}).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}

// LinkPostalCode links a courier to a postal code. Linking an already
// linked pair is a no-op.
func (r *GormCourierRepository) LinkPostalCode(
	ctx context.Context,
	courierID kernel.UUID,
	postalCode string,
) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}

	dto := PostalAssignmentDTO{
		CourierID:  courierID.Bytes(),
		PostalCode: postalCode,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}

// GetAllDueForRefresh retrieves unavailable couriers whose unavailability
// window has elapsed at the given instant.
func (r *GormCourierRepository) GetAllDueForRefresh(
	ctx context.Context,
	now time.Time,
) ([]*courier.Courier, error) {
	var dtos []CourierDTO
	if err := r.db.WithContext(ctx).
		Where("is_available = ? AND unavailable_until IS NOT NULL AND unavailable_until <= ?", false, now).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}
