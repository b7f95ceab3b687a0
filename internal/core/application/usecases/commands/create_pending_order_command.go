package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrCreatePendingOrderCommandIsNotConstructed = errors.New(
	"CreatePendingOrderCommand must be created via NewCreatePendingOrderCommand constructor",
)

// CreatePendingOrderCommand represents a request to open a new empty order
// for a customer. A customer can hold at most one Pending order at a time.
type CreatePendingOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreatePendingOrderCommand creates a command to open a new order.
// Both identifiers must be valid UUIDs.
func NewCreatePendingOrderCommand(orderID, customerID kernel.UUID) (CreatePendingOrderCommand, error) {
	command := CreatePendingOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
	); err != nil {
		return CreatePendingOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePendingOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreatePendingOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c CreatePendingOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer opening the order.
func (c CreatePendingOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *CreatePendingOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreatePendingOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}
