package jobs

import (
	"fmt"
	"log/slog"

	"pizzeria/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryCompletionJob  *DeliveryCompletionJob
	courierAvailabilityJob *CourierAvailabilityJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	completeDeliveriesHandler commands.CompleteDueDeliveriesCommandHandler,
	refreshCouriersHandler commands.RefreshCourierAvailabilityCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deliveryCompletionJob:  NewDeliveryCompletionJob(completeDeliveriesHandler, logger),
		courierAvailabilityJob: NewCourierAvailabilityJob(refreshCouriersHandler, logger),
	}
}

// DeliveryCompletionJob exposes the completion job so the read path can
// trigger an immediate sweep.
func (jm *JobManager) DeliveryCompletionJob() *DeliveryCompletionJob {
	return jm.deliveryCompletionJob
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryCompletionJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery completion job: %w", err)
	}

	if err := jm.courierAvailabilityJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.deliveryCompletionJob.Stop()
		return fmt.Errorf("failed to start courier availability job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deliveryCompletionJob.Stop()
	jm.courierAvailabilityJob.Stop()
}
