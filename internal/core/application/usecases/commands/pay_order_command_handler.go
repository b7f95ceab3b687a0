package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pizzeria/internal/core/domain/model/courier"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// PayOrderCommandHandler processes order payment. The courier pool for the
// delivery postal code is row-locked while a courier is picked, so two
// concurrent payments can never book the same courier. When no linked
// courier can take the delivery, a new one is hired and linked on the spot,
// so payment never fails for lack of a courier.
type PayOrderCommandHandler struct {
	uowFactory  OrderCourierUoWFactory
	publisher   ports.OrderEventPublisher
	paidCounter interface{ Inc() }
}

// NewPayOrderCommandHandler creates a handler for order payment.
// Publisher and counter may be nil when eventing or metrics are disabled.
func NewPayOrderCommandHandler(
	uowFactory OrderCourierUoWFactory,
	publisher ports.OrderEventPublisher,
	paidCounter interface{ Inc() },
) PayOrderCommandHandler {
	return PayOrderCommandHandler{
		uowFactory:  uowFactory,
		publisher:   publisher,
		paidCounter: paidCounter,
	}
}

// Handle pays the order: locks the postal code's courier pool, books a
// courier through the dispatcher, and transitions the order to Paid with
// its delivery scheduled one lead time out. Order, courier, and the
// optional new postal-code link commit atomically.
func (h PayOrderCommandHandler) Handle(ctx context.Context, command PayOrderCommand) error {
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
	courierRepo := uow.CourierRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if !aggregate.CustomerID().IsEqual(command.CustomerID()) {
		return errs.NewObjectNotFoundError("order", command.OrderID().String())
	}
	if aggregate.Address() == nil {
		return order.ErrMissingDeliveryInfo
	}

	postalCode := aggregate.Address().PostalCode()
	now := time.Now()
	deliveryAt := now.UTC().Add(order.DeliveryLeadTime)

	candidates, err := courierRepo.GetLinkedForUpdate(ctx, postalCode)
	if err != nil {
		return err
	}

	booked, err := services.NewCourierDispatcher().Dispatch(candidates, deliveryAt)
	switch {
	case err == nil:
		if err = courierRepo.Update(ctx, booked); err != nil {
			return err
		}
	case errors.Is(err, services.ErrNoAvailableCourier):
		// Nobody linked, or everybody linked is still out on a delivery.
		// Either way the customer gets a freshly hired courier.
		booked, err = h.hireCourierFor(ctx, courierRepo, postalCode, deliveryAt)
		if err != nil {
			return err
		}
	default:
		return err
	}

	if err = aggregate.Pay(booked.ID(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.paidCounter != nil {
		h.paidCounter.Inc()
	}

	if h.publisher != nil {
		event := ports.OrderStatusChanged{
			OrderID:    aggregate.ID(),
			CustomerID: aggregate.CustomerID(),
			Status:     aggregate.Status(),
			OccurredAt: time.Now().UTC(),
		}
		if err = h.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
			slog.Warn("failed to publish order status change",
				slog.String("orderId", aggregate.ID().String()),
				slog.Any("error", err))
		}
	}

	return nil
}

func (h PayOrderCommandHandler) hireCourierFor(
	ctx context.Context,
	courierRepo ports.CourierRepository,
	postalCode string,
	deliveryAt time.Time,
) (*courier.Courier, error) {
	hired, err := courier.NewCourier("Courier " + postalCode)
	if err != nil {
		return nil, err
	}
	if err = hired.Book(deliveryAt); err != nil {
		return nil, err
	}

	if err = courierRepo.Add(ctx, hired); err != nil {
		return nil, err
	}
	if err = courierRepo.LinkPostalCode(ctx, hired.ID(), postalCode); err != nil {
		return nil, err
	}

	return hired, nil
}
