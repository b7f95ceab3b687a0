package queries

import (
	"context"
	"log/slog"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliverySweeper completes due deliveries before a read. Running the sweep
// on the read path keeps reported statuses truthful even when the scheduled
// sweep has not fired yet.
type DeliverySweeper interface {
	Sweep(ctx context.Context, now time.Time) error
}

// GetOrderHistoryQueryHandler lists a customer's orders newest first.
// Before reading it runs the delivery completion sweep, so an order whose
// countdown elapsed seconds ago already reads as Delivered.
type GetOrderHistoryQueryHandler struct {
	db      *gorm.DB
	sweeper DeliverySweeper
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
// The sweeper may be nil, in which case reads skip the completion sweep.
func NewGetOrderHistoryQueryHandler(db *gorm.DB, sweeper DeliverySweeper) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db, sweeper: sweeper}
}

// Handle returns the customer's orders, newest first. A sweep failure is
// logged but does not fail the read: the history is then merely as stale
// as the last successful sweep.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if h.sweeper != nil {
		if err := h.sweeper.Sweep(ctx, time.Now()); err != nil {
			slog.Warn("delivery completion sweep failed on read path", slog.Any("error", err))
		}
	}

	orders := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			placed_at,
			delivery_at
		FROM orders
		WHERE customer_id = ?
		ORDER BY placed_at DESC
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var status int
		var placedAt time.Time
		var deliveryAt *time.Time

		if err = rows.Scan(&id, &status, &placedAt, &deliveryAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, GetOrderHistoryQueryResponse{
			ID:         orderID,
			Status:     order.Status(status).String(),
			PlacedAt:   placedAt,
			DeliveryAt: deliveryAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
