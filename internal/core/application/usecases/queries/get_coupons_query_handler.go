package queries

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCouponsQueryHandler lists a customer's coupons. Coupons closest to
// expiring sort first so customers see what they are about to lose;
// never-expiring coupons sort last.
type GetCouponsQueryHandler struct {
	db *gorm.DB
}

// NewGetCouponsQueryHandler creates a handler for coupon wallet queries.
func NewGetCouponsQueryHandler(db *gorm.DB) GetCouponsQueryHandler {
	return GetCouponsQueryHandler{db: db}
}

// Handle returns the customer's coupons, redeemed ones included.
func (h GetCouponsQueryHandler) Handle(
	ctx context.Context,
	query GetCouponsQuery,
) ([]GetCouponsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	coupons := make([]GetCouponsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			discount_percent,
			expires_at,
			is_redeemed
		FROM coupons
		WHERE customer_id = ?
		ORDER BY expires_at ASC NULLS LAST, code ASC
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var code string
		var discountPercent int
		var expiresAt *time.Time
		var redeemed bool

		if err = rows.Scan(&id, &code, &discountPercent, &expiresAt, &redeemed); err != nil {
			return nil, err
		}

		couponID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		coupons = append(coupons, GetCouponsQueryResponse{
			ID:              couponID,
			Code:            code,
			DiscountPercent: discountPercent,
			ExpiresAt:       expiresAt,
			Redeemed:        redeemed,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return coupons, nil
}
