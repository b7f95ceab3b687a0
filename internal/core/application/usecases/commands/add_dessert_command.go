package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrAddDessertCommandIsNotConstructed = errors.New(
	"AddDessertCommand must be created via NewAddDessertCommand constructor",
)

// AddDessertCommand represents a request to add a catalog dessert to a
// pending order. Repeated adds of the same dessert merge into one line.
type AddDessertCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	dessertID  kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewAddDessertCommand creates a command to add a dessert to an order.
// Quantity must be positive.
func NewAddDessertCommand(orderID, customerID, dessertID kernel.UUID, quantity int) (AddDessertCommand, error) {
	command := AddDessertCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setDessertID(dessertID),
		command.setQuantity(quantity),
	); err != nil {
		return AddDessertCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddDessertCommand) Validate() error {
	return c.guard.Validate(ErrAddDessertCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c AddDessertCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer acting on the order.
func (c AddDessertCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// DessertID returns the referenced catalog dessert.
func (c AddDessertCommand) DessertID() kernel.UUID {
	return c.dessertID
}

// Quantity returns how many units to add.
func (c AddDessertCommand) Quantity() int {
	return c.quantity
}

func (c *AddDessertCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddDessertCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *AddDessertCommand) setDessertID(dessertID kernel.UUID) error {
	if err := dessertID.Validate(); err != nil {
		return err
	}

	c.dessertID = dessertID
	return nil
}

func (c *AddDessertCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, 100)
	}

	c.quantity = quantity
	return nil
}
