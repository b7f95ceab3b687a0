package couponrepo

import (
	"context"
	"errors"

	"pizzeria/internal/core/domain/model/coupon"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCouponRepository implements ports.CouponRepository using GORM.
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GORM coupon repository.
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// Add saves a newly granted coupon.
func (r *GormCouponRepository) Add(ctx context.Context, aggregate *coupon.Coupon) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a coupon by ID.
func (r *GormCouponRepository) Get(ctx context.Context, id kernel.UUID) (*coupon.Coupon, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CouponDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("coupon", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode retrieves a coupon by its unique code.
func (r *GormCouponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto CouponDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("coupon", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByCustomer retrieves every coupon granted to the customer, soonest
// expiry first, never-expiring coupons last.
func (r *GormCouponRepository) GetAllByCustomer(
	ctx context.Context,
	customerID kernel.UUID,
) ([]*coupon.Coupon, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CouponDTO
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID.Bytes()).
		Order("expires_at ASC NULLS LAST").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	coupons := make([]*coupon.Coupon, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}

	return coupons, nil
}

// ExistsByCode reports whether a coupon with the given code exists.
func (r *GormCouponRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	if code == "" {
		return false, errs.NewValueIsRequiredError("code")
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&CouponDTO{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// CountLoyaltyByCustomer counts the loyalty coupons ever granted to the
// customer, redeemed ones included.
func (r *GormCouponRepository) CountLoyaltyByCustomer(
	ctx context.Context,
	customerID kernel.UUID,
) (int, error) {
	if err := customerID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&CouponDTO{}).
		Where("customer_id = ? AND code LIKE ?", customerID.Bytes(), "LOYALTY-%").
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

// Redeem atomically marks the coupon redeemed with a compare-and-set on
// the redeemed flag. Of any set of concurrent redeemers exactly one
// update matches; the rest find zero rows affected, which reads back as
// "not changed" rather than an error.
func (r *GormCouponRepository) Redeem(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&CouponDTO{}).
		Where("id = ? AND NOT is_redeemed", id.Bytes()).
		Update("is_redeemed", true)
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&CouponDTO{}).
			Where("id = ?", id.Bytes()).
			Count(&count).Error; err != nil {
			return false, err
		}
		if count == 0 {
			return false, errs.NewObjectNotFoundError("coupon", id.String())
		}

		return false, nil
	}

	return true, nil
}
