package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrRemoveLineCommandIsNotConstructed = errors.New(
	"RemoveLineCommand must be created via NewRemoveLineCommand constructor",
)

// RemoveLineCommand represents a request to remove one unit from a line on
// a pending order. Pizza lines disappear outright; drink and dessert lines
// are decremented until empty.
type RemoveLineCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	lineID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveLineCommand creates a command to remove a line unit from an order.
func NewRemoveLineCommand(orderID, customerID, lineID kernel.UUID) (RemoveLineCommand, error) {
	command := RemoveLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setLineID(lineID),
	); err != nil {
		return RemoveLineCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveLineCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c RemoveLineCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer acting on the order.
func (c RemoveLineCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// LineID returns the line to remove a unit from.
func (c RemoveLineCommand) LineID() kernel.UUID {
	return c.lineID
}

func (c *RemoveLineCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RemoveLineCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *RemoveLineCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}
