package commands

import (
	"context"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// AddDessertCommandHandler adds a dessert line to a pending order.
type AddDessertCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.CatalogReader
}

// NewAddDessertCommandHandler creates a handler for adding desserts to orders.
func NewAddDessertCommandHandler(uowFactory OrderUoWFactory, catalog ports.CatalogReader) AddDessertCommandHandler {
	return AddDessertCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle validates the dessert against the catalog and adds or merges the line.
func (h AddDessertCommandHandler) Handle(ctx context.Context, command AddDessertCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	exists, err := h.catalog.Exists(ctx, order.ItemRef{Kind: order.ItemKindDessert, ID: command.DessertID()})
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("dessert", command.DessertID().String())
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

	if _, err = aggregate.AddDessert(command.DessertID(), command.Quantity()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
