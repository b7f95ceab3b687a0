// Package retry reruns operations that failed with a transient store
// error. Only errs.ErrUnavailable is retried: the unit of work guarantees
// the failed transaction was rolled back, so rerunning it is safe.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pizzeria/internal/pkg/errs"
)

// Config describes the retry behavior.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultConfig retries three times with exponential backoff capped at one second.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   50 * time.Millisecond,
		MaxDelay:    time.Second,
	}
}

// Do runs op, rerunning it on errs.ErrUnavailable until it succeeds, the
// attempts run out, or the context is canceled. Other errors return
// immediately.
func Do(ctx context.Context, cfg Config, name string, op func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if ctx.Err() != nil || attempt == cfg.MaxAttempts || !errors.Is(lastErr, errs.ErrUnavailable) {
			break
		}

		delay := backoff(cfg.BaseDelay, cfg.MaxDelay, attempt)
		slog.Warn("retrying after transient failure",
			slog.String("operation", name),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr),
		)

		if !sleepWithContext(ctx, delay) {
			break
		}
	}

	return lastErr
}

func backoff(base, maxDelay time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > maxDelay {
		return maxDelay
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
