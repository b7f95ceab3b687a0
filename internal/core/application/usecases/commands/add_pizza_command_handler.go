package commands

import (
	"context"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// AddPizzaCommandHandler puts a composed pizza on a pending order after
// checking every referenced ingredient against the catalog.
type AddPizzaCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.CatalogReader
}

// NewAddPizzaCommandHandler creates a handler for adding pizzas to orders.
func NewAddPizzaCommandHandler(uowFactory OrderUoWFactory, catalog ports.CatalogReader) AddPizzaCommandHandler {
	return AddPizzaCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle validates the ingredient references and appends the pizza line.
// An order belonging to another customer reads as not found.
func (h AddPizzaCommandHandler) Handle(ctx context.Context, command AddPizzaCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	for _, ingredientID := range command.IngredientIDs() {
		exists, err := h.catalog.Exists(ctx, order.ItemRef{Kind: order.ItemKindIngredient, ID: ingredientID})
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("ingredient", ingredientID.String())
		}
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

	if _, err = aggregate.AddPizza(command.IngredientIDs()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
