package service

import (
	"context"
	"time"
)

// Sleeper waits for d or until ctx is done. Injected so retry behaviour is
// testable without real timers.
type Sleeper func(ctx context.Context, d time.Duration) error

// ContextSleep is the production Sleeper.
func ContextSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RetryPolicy is a bounded fixed-delay retry: MaxAttempts tries in total with
// Delay between consecutive attempts.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy matches the tracer's historical behaviour: 3 attempts,
// 5 seconds apart.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Delay: 5 * time.Second}

// Run invokes fn until it succeeds or attempts are exhausted, sleeping
// between attempts. The last error is returned; a cancelled context cuts the
// loop short.
func (p RetryPolicy) Run(ctx context.Context, sleep Sleeper, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	if sleep == nil {
		sleep = ContextSleep
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if serr := sleep(ctx, p.Delay); serr != nil {
				return err
			}
		}
		if err = fn(ctx); err == nil {
			return nil
		}
	}
	return err
}
