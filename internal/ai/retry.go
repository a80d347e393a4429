package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"brightside/internal/metrics"

	"github.com/openai/openai-go/v3"
)

const (
	retryMaxAttempts = 5
	retryDelayFactor = 1.5
)

// Overridable in tests; the production delay starts at 5s.
var retryBaseDelay = 5 * time.Second

// Substrings are a heuristic against provider wording, not a contract.
var rateLimitSubstrings = []string{
	"rate limit",
	"too many requests",
	"quota",
	"resource_exhausted",
	"429",
}

// withRetry runs fn, retrying only on rate-limit signals with a growing
// delay. Any other error propagates immediately.
func withRetry(ctx context.Context, fn func() error) error {
	delay := retryBaseDelay

	var err error
	for attempt := 1; attempt <= retryMaxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isRateLimited(err) {
			return err
		}
		if attempt == retryMaxAttempts {
			break
		}

		metrics.Retries.Inc()

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}

		delay = time.Duration(float64(delay) * retryDelayFactor)
	}

	return err
}

func isRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == 429 {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, s := range rateLimitSubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}

	return false
}
