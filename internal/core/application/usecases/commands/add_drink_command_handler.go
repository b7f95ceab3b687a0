package commands

import (
	"context"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// AddDrinkCommandHandler adds a drink line to a pending order.
type AddDrinkCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.CatalogReader
}

// NewAddDrinkCommandHandler creates a handler for adding drinks to orders.
func NewAddDrinkCommandHandler(uowFactory OrderUoWFactory, catalog ports.CatalogReader) AddDrinkCommandHandler {
	return AddDrinkCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle validates the drink against the catalog and adds or merges the line.
func (h AddDrinkCommandHandler) Handle(ctx context.Context, command AddDrinkCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	exists, err := h.catalog.Exists(ctx, order.ItemRef{Kind: order.ItemKindDrink, ID: command.DrinkID()})
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("drink", command.DrinkID().String())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if _, err = aggregate.AddDrink(command.DrinkID(), command.Quantity()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
