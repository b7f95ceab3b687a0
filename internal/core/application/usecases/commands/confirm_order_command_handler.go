package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pizzeria/internal/core/domain/model/coupon"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// ErrConfirmedOrderExists is returned when a customer who already has a
// Confirmed order awaiting payment tries to confirm another one.
var ErrConfirmedOrderExists = errors.New("customer already has a confirmed order awaiting payment")

// ConfirmOrderCommandHandler confirms pending orders. When a coupon code is
// supplied the coupon is validated, attached, and redeemed in the same
// transaction as the status transition: either the order confirms with the
// discount locked in, or nothing happens.
type ConfirmOrderCommandHandler struct {
	uowFactory      OrderCouponUoWFactory
	publisher       ports.OrderEventPublisher
	redeemedCounter interface{ Inc() }
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
// Publisher and counter may be nil when eventing or metrics are disabled.
func NewConfirmOrderCommandHandler(
	uowFactory OrderCouponUoWFactory,
	publisher ports.OrderEventPublisher,
	redeemedCounter interface{ Inc() },
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory:      uowFactory,
		publisher:       publisher,
		redeemedCounter: redeemedCounter,
	}
}

// Handle confirms the order. Returns ErrConfirmedOrderExists when another
// confirmed order is already awaiting payment, and the coupon package
// errors when the supplied code cannot be redeemed. Coupon redemption is a
// compare-and-set in the store, so two orders racing for the same coupon
// cannot both win.
func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, command ConfirmOrderCommand) error {
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
	couponRepo := uow.CouponRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if !aggregate.CustomerID().IsEqual(command.CustomerID()) {
		return errs.NewObjectNotFoundError("order", command.OrderID().String())
	}

	existing, err := orderRepo.GetConfirmedByCustomer(ctx, command.CustomerID())
	if err == nil && !existing.ID().IsEqual(aggregate.ID()) {
		return ErrConfirmedOrderExists
	}
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	couponRedeemed := false
	if command.CouponCode() != "" {
		cpn, err := couponRepo.GetByCode(ctx, command.CouponCode())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return coupon.ErrCouponNotFound
		}
		if err != nil {
			return err
		}

		if err = cpn.ValidateFor(command.CustomerID(), time.Now()); err != nil {
			return err
		}
		if err = aggregate.AttachCoupon(cpn.ID()); err != nil {
			return err
		}
		// ValidateFor caught coupons already redeemed before this
		// transaction; losing the CAS means a concurrent confirm won the
		// same coupon just now.
		changed, redeemErr := couponRepo.Redeem(ctx, cpn.ID())
		if redeemErr != nil {
			return redeemErr
		}
		if !changed {
			return coupon.ErrCouponAlreadyRedeemed
		}
		couponRedeemed = true
	}

	if err = aggregate.Confirm(command.Address()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if couponRedeemed && h.redeemedCounter != nil {
		h.redeemedCounter.Inc()
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
