package queries

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackDeliveryQueryHandler reports delivery progress for one paid order:
// the courier carrying it and how many seconds remain on the countdown.
type TrackDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewTrackDeliveryQueryHandler creates a handler for delivery tracking queries.
func NewTrackDeliveryQueryHandler(db *gorm.DB) TrackDeliveryQueryHandler {
	return TrackDeliveryQueryHandler{db: db}
}

// Handle returns the tracking view of the order. Orders that have not been
// paid yet have no courier and no countdown, so tracking them fails with
// ErrDeliveryNotStarted. A delivered order reports zero remaining seconds.
func (h TrackDeliveryQueryHandler) Handle(
	ctx context.Context,
	query TrackDeliveryQuery,
) (TrackDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackDeliveryQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.delivery_at,
			c.name
		FROM orders o
		LEFT JOIN couriers c ON c.id = o.courier_id
		WHERE o.id = ? AND o.customer_id = ?
	`, query.OrderID().Bytes(), query.CustomerID().Bytes()).Rows()
	if err != nil {
		return TrackDeliveryQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return TrackDeliveryQueryResponse{}, err
		}

		return TrackDeliveryQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	var id uuid.UUID
	var status int
	var deliveryAt *time.Time
	var courierName *string

	if err = rows.Scan(&id, &status, &deliveryAt, &courierName); err != nil {
		return TrackDeliveryQueryResponse{}, err
	}

	orderStatus := order.Status(status)
	if orderStatus != order.Paid && orderStatus != order.Delivered {
		return TrackDeliveryQueryResponse{}, ErrDeliveryNotStarted
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return TrackDeliveryQueryResponse{}, err
	}

	response := TrackDeliveryQueryResponse{
		OrderID: orderID,
		Status:  orderStatus.String(),
	}
	if courierName != nil {
		response.CourierName = *courierName
	}
	if deliveryAt != nil {
		response.DeliveryAt = *deliveryAt

		if orderStatus == order.Paid {
			if remaining := time.Until(*deliveryAt); remaining > 0 {
				response.RemainingSeconds = int64(remaining.Seconds())
			}
		}
	}

	return response, nil
}
