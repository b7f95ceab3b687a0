package commands

import (
	"context"
)

// RefreshCourierAvailabilityCommandHandler runs the courier availability
// sweep. The sweep is idempotent: couriers already refreshed by an earlier
// run are skipped, so overlapping runs converge on the same state.
type RefreshCourierAvailabilityCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewRefreshCourierAvailabilityCommandHandler creates a handler for the
// availability sweep.
func NewRefreshCourierAvailabilityCommandHandler(uowFactory CourierUoWFactory) RefreshCourierAvailabilityCommandHandler {
	return RefreshCourierAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle flips every due courier back to available.
func (h RefreshCourierAvailabilityCommandHandler) Handle(
	ctx context.Context,
	command RefreshCourierAvailabilityCommand,
) error {
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

	due, err := courierRepo.GetAllDueForRefresh(ctx, command.Now())
	if err != nil {
		return err
	}

	for _, c := range due {
		if !c.RefreshAvailability(command.Now()) {
			continue
		}
		if err = courierRepo.Update(ctx, c); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
