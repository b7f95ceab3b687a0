package jobs

import (
	"context"
	"log/slog"
	"time"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/pkg/retry"

	"github.com/robfig/cron/v3"
)

// CourierAvailabilityJob returns couriers to the available pool once
// their delivery window elapses. Runs every second.
type CourierAvailabilityJob struct {
	handler commands.RefreshCourierAvailabilityCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCourierAvailabilityJob creates the courier availability refresh job.
func NewCourierAvailabilityJob(
	handler commands.RefreshCourierAvailabilityCommandHandler,
	logger *slog.Logger,
) *CourierAvailabilityJob {
	return &CourierAvailabilityJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "courier_availability_job"),
	}
}

// Start begins the refresh, running every second.
func (j *CourierAvailabilityJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewRefreshCourierAvailabilityCommand(time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Courier availability refresh misconfigured", "error", err)
			return
		}

		err = retry.Do(ctx, retry.DefaultConfig(), "refresh courier availability", func(ctx context.Context) error {
			return j.handler.Handle(ctx, cmd)
		})
		if err != nil {
			j.logger.ErrorContext(ctx, "Courier availability refresh failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Courier availability job started (running every second)")
	return nil
}

// Stop stops the refresh.
func (j *CourierAvailabilityJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Courier availability job stopped")
}
