package order

import (
	"fmt"

	"pizzeria/internal/pkg/errs"
)

// Status represents the lifecycle state of a customer order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Paid ──> Delivered
//
// No transition skips a state and no backward transition exists.
// Deletion of an order is permitted only while it is Pending or Confirmed.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Line items may be freely added and removed while Pending.
	Pending

	// Confirmed indicates the customer confirmed the order with a delivery
	// address. Line items are frozen; the order awaits payment.
	Confirmed

	// Paid indicates payment completed: a courier is booked and the
	// delivery countdown is running.
	Paid

	// Delivered indicates the delivery countdown elapsed or the delivery
	// was explicitly marked done. This is a final state.
	Delivered
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Paid:      "Paid",
		Delivered: "Delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Confirmed: "Confirmed",
		Paid:      "Paid",
		Delivered: "Delivered",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Pending, Confirmed, Paid, Delivered.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements the fmt.Stringer interface and is safe to call on any
// Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanModifyItems reports whether line items may be added or removed.
// Only Pending orders accept item changes.
func (s Status) CanModifyItems() bool {
	return s == Pending
}

// CanDelete reports whether an order in this status may be destroyed.
// Deletion is forbidden once the order has been paid.
func (s Status) CanDelete() bool {
	return s == Pending || s == Confirmed
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - Pending -> Confirmed
//
// Returns:
//   - (Confirmed, nil) on valid transition
//   - (0, error) if the order is not Pending
func (s Status) Confirm() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to confirm", s.String()))
	}
	return Confirmed, nil
}

// Pay transitions the status to Paid.
//
// Valid transitions:
//   - Confirmed -> Paid
//
// Returns:
//   - (Paid, nil) on valid transition
//   - (0, error) if the order is not Confirmed
func (s Status) Pay() (Status, error) {
	if s != Confirmed {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to pay", s.String()))
	}
	return Paid, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Paid -> Delivered
//
// Delivered is a final state with no further transitions possible.
// Callers that need idempotent completion check for Delivered before
// invoking this transition (see Order.MarkDelivered).
func (s Status) Deliver() (Status, error) {
	if s != Paid {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.String()))
	}
	return Delivered, nil
}

// ValidateCanHaveCourier validates the consistency between order status and
// courier assignment. Pending and Confirmed orders must not have a courier;
// Paid and Delivered orders must have one.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s != Paid && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()))
	}

	if !courier && (s == Paid || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()))
	}

	return nil
}
