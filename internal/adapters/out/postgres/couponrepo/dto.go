// Package couponrepo provides data transfer objects and mapping functions
// for coupon persistence.
package couponrepo

import (
	"time"

	"pizzeria/internal/core/domain/model/coupon"
	"pizzeria/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CouponDTO represents the database structure for persisting coupons.
// The unique index on code makes duplicate grants of the same
// deterministic code impossible, whatever the grant path.
type CouponDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Code            string     `gorm:"type:varchar(128);not null;uniqueIndex"`
	DiscountPercent int        `gorm:"not null"`
	ExpiresAt       *time.Time `gorm:"index"`
	IsRedeemed      bool       `gorm:"not null"`
}

// TableName specifies the database table name for coupon entities.
func (CouponDTO) TableName() string {
	return "coupons"
}

// fromDomain converts a coupon domain aggregate to its database representation.
func fromDomain(aggregate *coupon.Coupon) CouponDTO {
	return CouponDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		Code:            aggregate.Code(),
		DiscountPercent: aggregate.DiscountPercent(),
		ExpiresAt:       aggregate.ExpiresAt(),
		IsRedeemed:      aggregate.IsRedeemed(),
	}
}

// toDomain converts a database DTO to a coupon domain aggregate.
func toDomain(dto CouponDTO) (*coupon.Coupon, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return coupon.RestoreCoupon(
		id,
		customerID,
		dto.Code,
		dto.DiscountPercent,
		dto.ExpiresAt,
		dto.IsRedeemed,
	), nil
}
