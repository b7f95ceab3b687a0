package commands

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
)

// ErrPendingOrderExists is returned when a customer who already has a
// Pending order tries to open another one.
var ErrPendingOrderExists = errors.New("customer already has a pending order")

// CreatePendingOrderCommandHandler opens new orders. The single-Pending
// rule is checked inside the transaction; a partial unique index on the
// orders table backs the check against concurrent creates.
type CreatePendingOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreatePendingOrderCommandHandler creates a handler for opening orders.
func NewCreatePendingOrderCommandHandler(uowFactory OrderUoWFactory) CreatePendingOrderCommandHandler {
	return CreatePendingOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle opens a new empty Pending order for the customer.
// Returns ErrPendingOrderExists when the customer already has one, and
// ErrConfirmedOrderExists while an earlier order is still awaiting payment.
func (h CreatePendingOrderCommandHandler) Handle(ctx context.Context, command CreatePendingOrderCommand) error {
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

	_, err := orderRepo.GetPendingByCustomer(ctx, command.CustomerID())
	if err == nil {
		return ErrPendingOrderExists
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	_, err = orderRepo.GetConfirmedByCustomer(ctx, command.CustomerID())
	if err == nil {
		return ErrConfirmedOrderExists
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	aggregate, err := order.NewOrder(command.OrderID(), command.CustomerID(), time.Now())
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
