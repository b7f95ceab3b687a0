package order

import (
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

// DeliveryLeadTime is the fixed countdown between payment and delivery.
// Once the lead time elapses the order is considered delivered and its
// courier becomes eligible for new work.
const DeliveryLeadTime = 30 * time.Minute

// ErrOrderIsNotConstructed indicates that an Order was not created through
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errs.NewValueIsRequiredError(
	"Order must be created via NewOrder or RestoreOrder constructor",
)

// ErrEmptyOrder is returned when confirming an order with no line items.
var ErrEmptyOrder = errs.NewValueIsInvalidError("order has no items")

// ErrMissingDeliveryInfo is returned when confirming an order without a
// complete delivery address.
var ErrMissingDeliveryInfo = errs.NewValueIsRequiredError("delivery address")

// ErrOrderNotPending is returned when mutating the line items of an order
// that already left the Pending status.
var ErrOrderNotPending = errs.NewValueIsInvalidError("order is not pending")

// ErrOrderAlreadyPaid is returned when changing the coupon of a paid order
// or deleting an order that already left Pending or Confirmed.
var ErrOrderAlreadyPaid = errs.NewValueIsInvalidError("order is already paid")

// ErrLineNotFound is returned when removing a line that is not on the order.
var ErrLineNotFound = errs.NewValueIsInvalidError("line is not on the order")

// Order is the aggregate root tracking one customer order through its
// lifecycle. All mutation goes through the aggregate so the status state
// machine and line-item rules cannot be bypassed.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	status     Status
	placedAt   time.Time
	deliveryAt *time.Time
	address    *kernel.Address
	couponID   *kernel.UUID
	courierID  *kernel.UUID

	pizzas   []*PizzaLine
	drinks   []*DrinkLine
	desserts []*DessertLine

	guard guard.ConstructorGuard
}

// NewOrder creates a fresh Pending order for the given customer.
// The caller enforces the one-Pending-order-per-customer rule
// transactionally before persisting.
func NewOrder(id, customerID kernel.UUID, now time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	if err := customerID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}

	return &Order{
		id:         id,
		customerID: customerID,
		status:     Pending,
		placedAt:   now.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an order from persistence without re-applying
// business rules. It still validates structural consistency between the
// status and the courier assignment.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	status Status,
	placedAt time.Time,
	deliveryAt *time.Time,
	address *kernel.Address,
	couponID *kernel.UUID,
	courierID *kernel.UUID,
	pizzas []*PizzaLine,
	drinks []*DrinkLine,
	desserts []*DessertLine,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return nil, err
	}

	return &Order{
		id:         id,
		customerID: customerID,
		status:     status,
		placedAt:   placedAt,
		deliveryAt: deliveryAt,
		address:    address,
		couponID:   couponID,
		courierID:  courierID,
		pizzas:     pizzas,
		drinks:     drinks,
		desserts:   desserts,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was constructed through a constructor.
func (o *Order) Validate() error {
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PlacedAt returns when the order was created.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// DeliveryAt returns the scheduled delivery completion time,
// or nil while the order is not yet paid.
func (o *Order) DeliveryAt() *time.Time {
	return o.deliveryAt
}

// Address returns the delivery address, or nil while the order is not
// yet confirmed.
func (o *Order) Address() *kernel.Address {
	return o.address
}

// CouponID returns the attached coupon, or nil when none is attached.
func (o *Order) CouponID() *kernel.UUID {
	return o.couponID
}

// CourierID returns the booked courier, or nil while the order is not
// yet paid.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

// Pizzas returns the pizza lines.
func (o *Order) Pizzas() []*PizzaLine {
	return o.pizzas
}

// Drinks returns the drink lines.
func (o *Order) Drinks() []*DrinkLine {
	return o.drinks
}

// Desserts returns the dessert lines.
func (o *Order) Desserts() []*DessertLine {
	return o.desserts
}

// IsEmpty reports whether the order has no line items at all.
func (o *Order) IsEmpty() bool {
	return len(o.pizzas) == 0 && len(o.drinks) == 0 && len(o.desserts) == 0
}

// AddPizza composes a new pizza from the given ingredient references and
// puts it on the order. Each call adds a separate pizza even when an
// identical one already exists. Duplicate ingredients within one pizza are
// collapsed.
func (o *Order) AddPizza(ingredientIDs []kernel.UUID) (*PizzaLine, error) {
	if !o.status.CanModifyItems() {
		return nil, ErrOrderNotPending
	}

	line, err := NewPizzaLine(ingredientIDs)
	if err != nil {
		return nil, err
	}

	o.pizzas = append(o.pizzas, line)
	return line, nil
}

// AddDrink puts the given drink on the order. When a line for the same
// drink already exists its quantity is incremented instead of creating a
// second line.
func (o *Order) AddDrink(drinkID kernel.UUID, quantity int) (*DrinkLine, error) {
	if !o.status.CanModifyItems() {
		return nil, ErrOrderNotPending
	}

	for _, line := range o.drinks {
		if line.DrinkID().IsEqual(drinkID) {
			if err := line.Increment(quantity); err != nil {
				return nil, err
			}
			return line, nil
		}
	}

	line, err := NewDrinkLine(drinkID, quantity)
	if err != nil {
		return nil, err
	}

	o.drinks = append(o.drinks, line)
	return line, nil
}

// AddDessert puts the given dessert on the order, merging into an existing
// line for the same dessert when one exists.
func (o *Order) AddDessert(dessertID kernel.UUID, quantity int) (*DessertLine, error) {
	if !o.status.CanModifyItems() {
		return nil, ErrOrderNotPending
	}

	for _, line := range o.desserts {
		if line.DessertID().IsEqual(dessertID) {
			if err := line.Increment(quantity); err != nil {
				return nil, err
			}
			return line, nil
		}
	}

	line, err := NewDessertLine(dessertID, quantity)
	if err != nil {
		return nil, err
	}

	o.desserts = append(o.desserts, line)
	return line, nil
}

// RemoveLine removes one unit from the identified line. Pizza lines are
// removed outright; drink and dessert lines are decremented and dropped
// when their quantity reaches zero.
func (o *Order) RemoveLine(lineID kernel.UUID) error {
	if !o.status.CanModifyItems() {
		return ErrOrderNotPending
	}

	for i, line := range o.pizzas {
		if line.ID().IsEqual(lineID) {
			o.pizzas = append(o.pizzas[:i], o.pizzas[i+1:]...)
			return nil
		}
	}

	for i, line := range o.drinks {
		if line.ID().IsEqual(lineID) {
			if line.Decrement() == 0 {
				o.drinks = append(o.drinks[:i], o.drinks[i+1:]...)
			}
			return nil
		}
	}

	for i, line := range o.desserts {
		if line.ID().IsEqual(lineID) {
			if line.Decrement() == 0 {
				o.desserts = append(o.desserts[:i], o.desserts[i+1:]...)
			}
			return nil
		}
	}

	return ErrLineNotFound
}

// AttachCoupon associates a coupon with the order. The coupon itself is
// validated and redeemed by the confirmation use case; the aggregate only
// enforces that a paid order cannot change its coupon.
func (o *Order) AttachCoupon(couponID kernel.UUID) error {
	if o.status == Paid || o.status == Delivered {
		return ErrOrderAlreadyPaid
	}
	if err := couponID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("couponID", err)
	}

	o.couponID = &couponID
	return nil
}

// DetachCoupon removes the coupon association before payment.
func (o *Order) DetachCoupon() error {
	if o.status == Paid || o.status == Delivered {
		return ErrOrderAlreadyPaid
	}

	o.couponID = nil
	return nil
}

// Confirm freezes the order with the given delivery address and moves it
// to Confirmed. An order cannot be confirmed while it is empty.
func (o *Order) Confirm(address kernel.Address) error {
	if o.IsEmpty() {
		return ErrEmptyOrder
	}
	if err := address.Validate(); err != nil {
		return ErrMissingDeliveryInfo
	}

	status, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = status
	o.address = &address
	return nil
}

// Pay records payment, books the courier, and starts the delivery
// countdown at now plus the fixed lead time.
func (o *Order) Pay(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}

	status, err := o.status.Pay()
	if err != nil {
		return err
	}

	deliveryAt := now.UTC().Add(DeliveryLeadTime)

	o.status = status
	o.courierID = &courierID
	o.deliveryAt = &deliveryAt
	return nil
}

// DueForDelivery reports whether the order is paid and its delivery
// countdown has elapsed at the given instant.
func (o *Order) DueForDelivery(now time.Time) bool {
	return o.status == Paid && o.deliveryAt != nil && !o.deliveryAt.After(now)
}

// MarkDelivered completes the delivery. The call is idempotent: it returns
// true when the order transitioned to Delivered and false when it already
// was. Any other status is an error.
func (o *Order) MarkDelivered() (bool, error) {
	if o.status == Delivered {
		return false, nil
	}

	status, err := o.status.Deliver()
	if err != nil {
		return false, err
	}

	o.status = status
	return true, nil
}

// CanDelete reports whether the order may still be destroyed.
func (o *Order) CanDelete() bool {
	return o.status.CanDelete()
}
