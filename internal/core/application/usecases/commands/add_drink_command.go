package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrAddDrinkCommandIsNotConstructed = errors.New(
	"AddDrinkCommand must be created via NewAddDrinkCommand constructor",
)

// AddDrinkCommand represents a request to add a catalog drink to a pending
// order. Repeated adds of the same drink merge into one line.
type AddDrinkCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	drinkID    kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewAddDrinkCommand creates a command to add a drink to an order.
// Quantity must be positive.
func NewAddDrinkCommand(orderID, customerID, drinkID kernel.UUID, quantity int) (AddDrinkCommand, error) {
	command := AddDrinkCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setDrinkID(drinkID),
		command.setQuantity(quantity),
	); err != nil {
		return AddDrinkCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddDrinkCommand) Validate() error {
	return c.guard.Validate(ErrAddDrinkCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c AddDrinkCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer acting on the order.
func (c AddDrinkCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// DrinkID returns the referenced catalog drink.
func (c AddDrinkCommand) DrinkID() kernel.UUID {
	return c.drinkID
}

// Quantity returns how many units to add.
func (c AddDrinkCommand) Quantity() int {
	return c.quantity
}

func (c *AddDrinkCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddDrinkCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *AddDrinkCommand) setDrinkID(drinkID kernel.UUID) error {
	if err := drinkID.Validate(); err != nil {
		return err
	}

	c.drinkID = drinkID
	return nil
}

func (c *AddDrinkCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, 100)
	}

	c.quantity = quantity
	return nil
}
