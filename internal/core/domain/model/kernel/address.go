package kernel

import (
	"errors"
	"fmt"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

// ErrAddressIsNotConstructed indicates that an Address was not created through
// the NewAddress constructor. A zero-value Address fails validation, which is
// how an order detects a missing delivery address at confirmation time.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"Address must be created via NewAddress constructor",
)

// Address is a value object holding the complete delivery address of an order.
// All fields are required: an order cannot be confirmed without a street,
// house number, city, postal code, and contact phone number.
//
// Address is immutable after construction.
type Address struct {
	street      string
	houseNumber int
	city        string
	postalCode  string
	phone       string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated delivery address.
// Every field is mandatory and the house number must be positive.
// Returns the aggregated validation errors if any field is missing.
//
// Example:
//
//	address, err := kernel.NewAddress("Keizerstraat", 12, "Maastricht", "1000AB", "0612345678")
//	if err != nil {
//	    // at least one delivery-info field is missing
//	}
func NewAddress(street string, houseNumber int, city, postalCode, phone string) (Address, error) {
	address := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setStreet(street),
		address.setHouseNumber(houseNumber),
		address.setCity(city),
		address.setPostalCode(postalCode),
		address.setPhone(phone),
	); err != nil {
		return Address{}, err
	}

	return address, nil
}

// Validate ensures the Address was constructed through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street name.
func (a Address) Street() string {
	return a.street
}

// HouseNumber returns the house number.
func (a Address) HouseNumber() int {
	return a.houseNumber
}

// City returns the city name.
func (a Address) City() string {
	return a.city
}

// PostalCode returns the postal code. Couriers are pooled per postal code.
func (a Address) PostalCode() string {
	return a.postalCode
}

// Phone returns the contact phone number for the delivery.
func (a Address) Phone() string {
	return a.phone
}

// IsEqual compares two addresses field by field.
func (a Address) IsEqual(other Address) bool {
	return a.street == other.street &&
		a.houseNumber == other.houseNumber &&
		a.city == other.city &&
		a.postalCode == other.postalCode &&
		a.phone == other.phone
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setHouseNumber(houseNumber int) error {
	if houseNumber <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("house number",
			fmt.Errorf("%d is not greater than 0", houseNumber))
	}
	a.houseNumber = houseNumber
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postal code")
	}
	a.postalCode = postalCode
	return nil
}

func (a *Address) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	a.phone = phone
	return nil
}
