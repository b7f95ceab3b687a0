package commands

import (
	"context"

	"pizzeria/internal/core/domain/model/courier"
)

// HireCourierCommandHandler hires couriers into the delivery pool.
type HireCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewHireCourierCommandHandler creates a handler for hiring couriers.
func NewHireCourierCommandHandler(uowFactory CourierUoWFactory) HireCourierCommandHandler {
	return HireCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle hires the courier and links every requested postal code.
func (h HireCourierCommandHandler) Handle(ctx context.Context, command HireCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()

	hired, err := courier.NewCourier(command.Name())
	if err != nil {
		return err
	}

	if err = courierRepo.Add(ctx, hired); err != nil {
		return err
	}

	for _, postalCode := range command.PostalCodes() {
		if err = courierRepo.LinkPostalCode(ctx, hired.ID(), postalCode); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
