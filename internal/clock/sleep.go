// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for the duration or returns early if the context is
// canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Every invokes fn immediately and then once per interval until the context
// is canceled. Errors from fn are reported through onErr and do not stop the
// loop; the only exit is context cancellation, whose cause is returned.
func Every(ctx context.Context, interval time.Duration, fn func(context.Context) error, onErr func(error)) error {
	for {
		if err := fn(ctx); err != nil && onErr != nil {
			onErr(err)
		}
		if err := SleepWithContext(ctx, interval); err != nil {
			return err
		}
	}
}
