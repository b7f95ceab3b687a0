package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand represents a request to confirm a pending order with
// a delivery address and an optional coupon code. Confirmation freezes the
// order's line items.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	address    kernel.Address
	couponCode string

	guard guard.ConstructorGuard
}

// NewConfirmOrderCommand creates a command to confirm an order. The address
// must be complete; couponCode may be empty when no coupon is applied.
func NewConfirmOrderCommand(
	orderID, customerID kernel.UUID,
	address kernel.Address,
	couponCode string,
) (ConfirmOrderCommand, error) {
	command := ConfirmOrderCommand{
		couponCode: couponCode,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setAddress(address),
	); err != nil {
		return ConfirmOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c ConfirmOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer confirming the order.
func (c ConfirmOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Address returns the delivery address.
func (c ConfirmOrderCommand) Address() kernel.Address {
	return c.address
}

// CouponCode returns the coupon code to apply, or empty when none.
func (c ConfirmOrderCommand) CouponCode() string {
	return c.couponCode
}

func (c *ConfirmOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *ConfirmOrderCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}
