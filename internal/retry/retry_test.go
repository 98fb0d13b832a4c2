package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/srbarik25/opsagent/internal/classify"
)

type testNetError struct {
	timeout bool
}

func (e testNetError) Error() string   { return "net error" }
func (e testNetError) Timeout() bool   { return e.timeout }
func (e testNetError) Temporary() bool { return false }

func fastConfig(attempts int) Config {
	return Config{MaxAttempts: attempts, BaseDelay: time.Microsecond, MaxDelay: time.Millisecond}
}

func TestDo_RetriesOnRetryableError(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(3), IsRetryable, func() error {
		attempts++
		return testNetError{timeout: true}
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestDo_NoRetryOnNonRetryable(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(3), IsRetryable, func() error {
		attempts++
		return errors.New("boom")
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestDo_SucceedsAfterRetry(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(3), IsRetryable, func() error {
		attempts++
		if attempts == 1 {
			return testNetError{timeout: true}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestIsRetryable_ClassifiedErrors(t *testing.T) {
	rateLimited := &classify.Error{Kind: classify.KindRateLimited}
	if !IsRetryable(rateLimited) {
		t.Error("rate-limited error should be retryable")
	}

	denied := &classify.Error{Kind: classify.KindPermissionDenied}
	if IsRetryable(denied) {
		t.Error("permission-denied error should not be retryable")
	}

	if IsRetryable(nil) {
		t.Error("nil should not be retryable")
	}
	if IsRetryable(context.Canceled) {
		t.Error("canceled context should not be retryable")
	}
}

func TestDo_HonorsSuggestedWait(t *testing.T) {
	// A 1-second suggested wait must dominate the microsecond backoff.
	rateLimited := &classify.Error{Kind: classify.KindRateLimited, WaitSeconds: 1}

	start := time.Now()
	attempts := 0
	err := Do(context.Background(), fastConfig(2), IsRetryable, func() error {
		attempts++
		return rateLimited
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Errorf("elapsed %v, expected at least the suggested 1s wait", elapsed)
	}
}

func TestDo_StopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Do(ctx, fastConfig(3), IsRetryable, func() error {
		attempts++
		return testNetError{timeout: true}
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 0 {
		t.Fatalf("expected 0 attempts, got %d", attempts)
	}
}
