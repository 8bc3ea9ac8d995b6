package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryPolicyRun(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		policy    RetryPolicy
		failures  int
		wantErr   error
		wantCalls int
	}{
		{
			name:      "first attempt succeeds",
			policy:    RetryPolicy{MaxAttempts: 3, Delay: time.Second},
			failures:  0,
			wantCalls: 1,
		},
		{
			name:      "succeeds on last attempt",
			policy:    RetryPolicy{MaxAttempts: 3, Delay: time.Second},
			failures:  2,
			wantCalls: 3,
		},
		{
			name:      "exhaustion returns last error",
			policy:    RetryPolicy{MaxAttempts: 3, Delay: time.Second},
			failures:  5,
			wantErr:   boom,
			wantCalls: 3,
		},
		{
			name:      "zero attempts means one try",
			policy:    RetryPolicy{},
			failures:  1,
			wantErr:   boom,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := tt.policy.Run(context.Background(), noSleep, func(context.Context) error {
				calls++
				if calls <= tt.failures {
					return boom
				}
				return nil
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryPolicySleepsBetweenAttempts(t *testing.T) {
	var slept []time.Duration
	sleep := func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	boom := errors.New("boom")
	policy := RetryPolicy{MaxAttempts: 3, Delay: 5 * time.Second}
	if err := policy.Run(context.Background(), sleep, func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}

	// Two sleeps for three attempts, each the fixed delay.
	if len(slept) != 2 {
		t.Fatalf("sleeps = %d, want 2", len(slept))
	}
	for _, d := range slept {
		if d != 5*time.Second {
			t.Fatalf("slept %v, want 5s", d)
		}
	}
}

func TestRetryPolicyCancelledContextStopsRetrying(t *testing.T) {
	boom := errors.New("boom")
	cancelledSleep := func(ctx context.Context, _ time.Duration) error {
		return context.Canceled
	}

	calls := 0
	policy := RetryPolicy{MaxAttempts: 3, Delay: time.Second}
	err := policy.Run(context.Background(), cancelledSleep, func(context.Context) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the last attempt error", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
