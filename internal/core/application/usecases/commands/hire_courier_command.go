package commands

import (
	"errors"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrHireCourierCommandIsNotConstructed = errors.New(
	"HireCourierCommand must be created via NewHireCourierCommand constructor",
)

// HireCourierCommand represents a request to hire a courier and link the
// postal codes they will serve.
type HireCourierCommand struct { //nolint:recvcheck //using for validation
	name        string
	postalCodes []string

	guard guard.ConstructorGuard
}

// NewHireCourierCommand creates a command to hire a courier.
// A name and at least one postal code are required.
func NewHireCourierCommand(name string, postalCodes []string) (HireCourierCommand, error) {
	command := HireCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setName(name),
		command.setPostalCodes(postalCodes),
	); err != nil {
		return HireCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c HireCourierCommand) Validate() error {
	return c.guard.Validate(ErrHireCourierCommandIsNotConstructed)
}

// Name returns the courier's display name.
func (c HireCourierCommand) Name() string {
	return c.name
}

// PostalCodes returns the postal codes the courier will serve.
func (c HireCourierCommand) PostalCodes() []string {
	return c.postalCodes
}

func (c *HireCourierCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *HireCourierCommand) setPostalCodes(postalCodes []string) error {
	if len(postalCodes) == 0 {
		return errs.NewValueIsRequiredError("postalCodes")
	}
	for _, code := range postalCodes {
		if code == "" {
			return errs.NewValueIsRequiredError("postalCode")
		}
	}

	c.postalCodes = postalCodes
	return nil
}
