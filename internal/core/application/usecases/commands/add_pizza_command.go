package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrAddPizzaCommandIsNotConstructed = errors.New(
	"AddPizzaCommand must be created via NewAddPizzaCommand constructor",
)

// AddPizzaCommand represents a request to compose a pizza from catalog
// ingredients and put it on a pending order.
type AddPizzaCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    kernel.UUID
	ingredientIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddPizzaCommand creates a command to add a pizza to an order.
// An empty ingredient list composes a plain base pizza.
func NewAddPizzaCommand(
	orderID, customerID kernel.UUID,
	ingredientIDs []kernel.UUID,
) (AddPizzaCommand, error) {
	command := AddPizzaCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setIngredientIDs(ingredientIDs),
	); err != nil {
		return AddPizzaCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddPizzaCommand) Validate() error {
	return c.guard.Validate(ErrAddPizzaCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c AddPizzaCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer acting on the order.
func (c AddPizzaCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// IngredientIDs returns the catalog ingredients composing the pizza.
func (c AddPizzaCommand) IngredientIDs() []kernel.UUID {
	return c.ingredientIDs
}

func (c *AddPizzaCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddPizzaCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *AddPizzaCommand) setIngredientIDs(ingredientIDs []kernel.UUID) error {
	for _, id := range ingredientIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.ingredientIDs = ingredientIDs
	return nil
}
