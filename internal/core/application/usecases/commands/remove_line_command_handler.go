package commands

import (
	"context"

	"pizzeria/internal/pkg/errs"
)

// RemoveLineCommandHandler removes line units from pending orders.
type RemoveLineCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRemoveLineCommandHandler creates a handler for removing order lines.
func NewRemoveLineCommandHandler(uowFactory OrderUoWFactory) RemoveLineCommandHandler {
	return RemoveLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle removes one unit from the identified line.
func (h RemoveLineCommandHandler) Handle(ctx context.Context, command RemoveLineCommand) error {
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

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if !aggregate.CustomerID().IsEqual(command.CustomerID()) {
		return errs.NewObjectNotFoundError("order", command.OrderID().String())
	}

	if err = aggregate.RemoveLine(command.LineID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
