// Package retry provides bounded exponential backoff for transient failures.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mfigueroa/lectrack/internal/constants"
)

// Config holds retry behavior. Sleep is injectable so the backoff schedule
// is testable without real timers.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the unit of the exponential schedule: the wait before
	// attempt n+1 is BaseDelay * 2^n.
	BaseDelay time.Duration
	// Sleep waits for d or until ctx is done. Defaults to a timer wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultConfig returns the import pipeline's schedule: three attempts
// with 2s and 4s pauses between them.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: constants.DefaultRetryCount,
		BaseDelay:   constants.DefaultRetryBase,
	}
}

// Classifier reports whether an error is worth retrying.
type Classifier func(error) bool

// Do runs fn up to cfg.MaxAttempts times. Errors the classifier rejects
// propagate immediately; context cancellation always does.
func Do(ctx context.Context, cfg Config, retryable Classifier, fn func(context.Context) error) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = timerSleep
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if retryable != nil && !retryable(err) {
			return err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		delay := cfg.BaseDelay << attempt
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", cfg.MaxAttempts, lastErr)
}

func timerSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
