// Package retry provides a bounded exponential-backoff helper for provider
// API calls. Rate-limit errors that carry a provider-suggested wait time are
// honored instead of the computed backoff.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"time"

	"github.com/srbarik25/opsagent/internal/classify"
)

// Predicate determines whether an error should be retried.
type Predicate func(error) bool

// Config controls retry behavior.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultConfig returns the default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
	}
}

// Do executes fn with retries using the provided config.
func Do(ctx context.Context, config Config, shouldRetry Predicate, fn func() error) error {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	if shouldRetry == nil {
		shouldRetry = IsRetryable
	}

	var err error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = fn()
		if err == nil {
			return nil
		}
		if attempt == config.MaxAttempts || !shouldRetry(err) {
			return err
		}

		delay := suggestedWait(err)
		if delay == 0 {
			delay = backoffDelay(config.BaseDelay, config.MaxDelay, attempt)
		}
		if delay <= 0 {
			continue
		}
		if !sleep(ctx, delay) {
			return ctx.Err()
		}
	}

	return err
}

// IsRetryable determines whether an error is likely transient: network
// timeouts, context deadline overruns, and classified rate limits.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var classified *classify.Error
	if errors.As(err, &classified) {
		return classified.Kind == classify.KindRateLimited
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// suggestedWait returns the provider-suggested backoff for rate-limit
// errors, or zero when the error carries none.
func suggestedWait(err error) time.Duration {
	var classified *classify.Error
	if errors.As(err, &classified) && classified.Kind == classify.KindRateLimited && classified.WaitSeconds > 0 {
		return time.Duration(classified.WaitSeconds) * time.Second
	}
	return 0
}

func backoffDelay(base, max time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	if attempt < 1 {
		attempt = 1
	}

	delay := base << (attempt - 1)
	if max > 0 && delay > max {
		delay = max
	}

	jitterMax := int64(delay)
	if jitterMax <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(jitterMax + 1))
}

func sleep(ctx context.Context, delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
