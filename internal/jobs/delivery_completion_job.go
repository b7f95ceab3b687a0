package jobs

import (
	"context"
	"log/slog"
	"time"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/pkg/retry"

	"github.com/robfig/cron/v3"
)

// DeliveryCompletionJob sweeps paid orders whose delivery countdown has
// elapsed and marks them Delivered. Runs every second.
type DeliveryCompletionJob struct {
	handler commands.CompleteDueDeliveriesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeliveryCompletionJob creates the delivery completion sweep job.
func NewDeliveryCompletionJob(
	handler commands.CompleteDueDeliveriesCommandHandler,
	logger *slog.Logger,
) *DeliveryCompletionJob {
	return &DeliveryCompletionJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "delivery_completion_job"),
	}
}

// Start begins the sweep, running every second.
func (j *DeliveryCompletionJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewCompleteDueDeliveriesCommand(time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Delivery completion sweep misconfigured", "error", err)
			return
		}

		err = retry.Do(ctx, retry.DefaultConfig(), "complete due deliveries", func(ctx context.Context) error {
			return j.handler.Handle(ctx, cmd)
		})
		if err != nil {
			j.logger.ErrorContext(ctx, "Delivery completion sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery completion job started (running every second)")
	return nil
}

// Stop stops the sweep.
func (j *DeliveryCompletionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery completion job stopped")
}

// Sweep runs one completion pass immediately. The order history read path
// calls this before serving, so countdowns that elapsed between ticks are
// already reflected in what the customer sees.
func (j *DeliveryCompletionJob) Sweep(ctx context.Context, now time.Time) error {
	cmd, err := commands.NewCompleteDueDeliveriesCommand(now)
	if err != nil {
		return err
	}

	return j.handler.Handle(ctx, cmd)
}
