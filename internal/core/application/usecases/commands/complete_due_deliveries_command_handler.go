package commands

import (
	"context"
	"log/slog"
	"time"

	"pizzeria/internal/core/ports"
)

// CompleteDueDeliveriesCommandHandler runs the delivery completion sweep.
// It runs on a schedule and again from the order history read path, so the
// sweep is idempotent: orders already Delivered are skipped.
type CompleteDueDeliveriesCommandHandler struct {
	uowFactory       OrderUoWFactory
	publisher        ports.OrderEventPublisher
	deliveredCounter interface{ Inc() }
}

// NewCompleteDueDeliveriesCommandHandler creates a handler for the
// completion sweep. Publisher and counter may be nil.
func NewCompleteDueDeliveriesCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	deliveredCounter interface{ Inc() },
) CompleteDueDeliveriesCommandHandler {
	return CompleteDueDeliveriesCommandHandler{
		uowFactory:       uowFactory,
		publisher:        publisher,
		deliveredCounter: deliveredCounter,
	}
}

// Handle marks every due order Delivered and publishes the transitions
// after commit.
func (h CompleteDueDeliveriesCommandHandler) Handle(ctx context.Context, command CompleteDueDeliveriesCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	due, err := orderRepo.GetAllPaidDueBy(ctx, command.Now())
	if err != nil {
		return err
	}

	var completed []ports.OrderStatusChanged
	for _, o := range due {
		transitioned, err := o.MarkDelivered()
		if err != nil {
			return err
		}
		if !transitioned {
			continue
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
		completed = append(completed, ports.OrderStatusChanged{
			OrderID:    o.ID(),
			CustomerID: o.CustomerID(),
			Status:     o.Status(),
			OccurredAt: time.Now().UTC(),
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, event := range completed {
		if h.deliveredCounter != nil {
			h.deliveredCounter.Inc()
		}
		if h.publisher == nil {
			continue
		}
		if err = h.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
			slog.Warn("failed to publish order status change",
				slog.String("orderId", event.OrderID.String()),
				slog.Any("error", err))
		}
	}

	return nil
}
