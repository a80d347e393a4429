package ai

import (
	"context"
	"errors"
	"testing"
	"time"
)

func withFastRetries(t *testing.T) {
	t.Helper()

	original := retryBaseDelay
	retryBaseDelay = time.Millisecond
	t.Cleanup(func() {
		retryBaseDelay = original
	})
}

func TestWithRetrySucceedsFirstAttempt(t *testing.T) {
	withFastRetries(t)

	calls := 0
	err := withRetry(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestWithRetryRetriesRateLimitErrors(t *testing.T) {
	withFastRetries(t)

	calls := 0
	err := withRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("429: rate limit exceeded, slow down")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestWithRetryGivesUpAfterMaxAttempts(t *testing.T) {
	withFastRetries(t)

	calls := 0
	err := withRetry(context.Background(), func() error {
		calls++
		return errors.New("quota exhausted for today")
	})
	if err == nil {
		t.Fatalf("expected an error")
	}
	if calls != retryMaxAttempts {
		t.Fatalf("expected %d calls, got %d", retryMaxAttempts, calls)
	}
}

func TestWithRetryPropagatesOtherErrorsImmediately(t *testing.T) {
	withFastRetries(t)

	calls := 0
	wantErr := errors.New("model not found")
	err := withRetry(context.Background(), func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestWithRetryStopsOnContextCancel(t *testing.T) {
	original := retryBaseDelay
	retryBaseDelay = time.Hour
	t.Cleanup(func() {
		retryBaseDelay = original
	})

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := withRetry(ctx, func() error {
		return errors.New("too many requests")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestIsRateLimited(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("Rate limit reached for requests"), true},
		{errors.New("You exceeded your current quota"), true},
		{errors.New("RESOURCE_EXHAUSTED: try later"), true},
		{errors.New("status 429"), true},
		{errors.New("invalid api key"), false},
	}

	for _, tc := range cases {
		if got := isRateLimited(tc.err); got != tc.want {
			t.Fatalf("isRateLimited(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
