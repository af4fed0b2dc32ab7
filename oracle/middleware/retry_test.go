package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"textflow/oracle"
)

// fastRetryConfig keeps backoff negligible so tests run quickly.
func fastRetryConfig(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:     maxRetries,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		BackoffFactor:  1.5,
		JitterFraction: 0.01,
	}
}

func transientError(statusCode int) error {
	return &oracle.Error{Provider: "test", StatusCode: statusCode, Err: errors.New("transient")}
}

func TestRetry_SucceedsWithoutRetryOnFirstAttempt(t *testing.T) {
	calls := 0

	completer := oracle.Apply(
		oracle.CompleterFunc(func(_ context.Context, _ oracle.Request) (*oracle.Response, error) {
			calls++
			return &oracle.Response{Text: "ok"}, nil
		}),
		NewRetry(fastRetryConfig(3)),
	)

	response, err := completer.Complete(context.Background(), oracle.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Text != "ok" {
		t.Errorf("expected response to pass through, got %q", response.Text)
	}
	if calls != 1 {
		t.Errorf("expected a single attempt, got %d", calls)
	}
}

func TestRetry_RecoversFromTransientFailures(t *testing.T) {
	calls := 0

	completer := oracle.Apply(
		oracle.CompleterFunc(func(_ context.Context, _ oracle.Request) (*oracle.Response, error) {
			calls++
			if calls < 3 {
				return nil, transientError(429)
			}
			return &oracle.Response{Text: "recovered"}, nil
		}),
		NewRetry(fastRetryConfig(3)),
	)

	response, err := completer.Complete(context.Background(), oracle.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Text != "recovered" {
		t.Errorf("expected recovery after retries, got %q", response.Text)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestRetry_ExhaustionWrapsSentinelAndLastError(t *testing.T) {
	calls := 0

	completer := oracle.Apply(
		oracle.CompleterFunc(func(_ context.Context, _ oracle.Request) (*oracle.Response, error) {
			calls++
			return nil, transientError(503)
		}),
		NewRetry(fastRetryConfig(2)),
	)

	_, err := completer.Complete(context.Background(), oracle.Request{})

	if !errors.Is(err, ErrRetryExhausted) {
		t.Fatalf("expected ErrRetryExhausted, got: %v", err)
	}

	var oracleError *oracle.Error
	if !errors.As(err, &oracleError) {
		t.Fatalf("expected the last provider error to remain unwrappable, got: %v", err)
	}
	if oracleError.StatusCode != 503 {
		t.Errorf("expected last status 503, got %d", oracleError.StatusCode)
	}

	if calls != 3 {
		t.Errorf("expected 1 original + 2 retries = 3 attempts, got %d", calls)
	}
}

func TestRetry_NonRetryableErrorFailsImmediately(t *testing.T) {
	calls := 0

	completer := oracle.Apply(
		oracle.CompleterFunc(func(_ context.Context, _ oracle.Request) (*oracle.Response, error) {
			calls++
			return nil, transientError(401)
		}),
		NewRetry(fastRetryConfig(3)),
	)

	_, err := completer.Complete(context.Background(), oracle.Request{})

	if errors.Is(err, ErrRetryExhausted) {
		t.Error("expected immediate failure, not exhaustion")
	}
	if calls != 1 {
		t.Errorf("expected exactly one attempt for a non-retryable error, got %d", calls)
	}
}

func TestRetry_CustomRetryableFunc(t *testing.T) {
	calls := 0
	config := fastRetryConfig(2)
	config.RetryableFunc = func(err error) bool {
		return err != nil && err.Error() == "try again"
	}

	completer := oracle.Apply(
		oracle.CompleterFunc(func(_ context.Context, _ oracle.Request) (*oracle.Response, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("try again")
			}
			return &oracle.Response{Text: "ok"}, nil
		}),
		NewRetry(config),
	)

	if _, err := completer.Complete(context.Background(), oracle.Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected retry driven by the custom predicate, got %d attempts", calls)
	}
}

func TestRetry_CanceledContextStopsBackoff(t *testing.T) {
	config := fastRetryConfig(5)
	config.InitialBackoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())

	completer := oracle.Apply(
		oracle.CompleterFunc(func(_ context.Context, _ oracle.Request) (*oracle.Response, error) {
			cancel()
			return nil, transientError(500)
		}),
		NewRetry(config),
	)

	_, err := completer.Complete(ctx, oracle.Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled during backoff, got: %v", err)
	}
}

func TestComputeBackoff_GrowsAndCaps(t *testing.T) {
	config := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     300 * time.Millisecond,
		BackoffFactor:  2.0,
		JitterFraction: 0, // deterministic for assertion
	}

	if got := computeBackoff(config, 0); got != 100*time.Millisecond {
		t.Errorf("attempt 0: expected 100ms, got %v", got)
	}
	if got := computeBackoff(config, 1); got != 200*time.Millisecond {
		t.Errorf("attempt 1: expected 200ms, got %v", got)
	}
	if got := computeBackoff(config, 2); got != 300*time.Millisecond {
		t.Errorf("attempt 2: expected cap at 300ms, got %v", got)
	}
	if got := computeBackoff(config, 10); got != 300*time.Millisecond {
		t.Errorf("attempt 10: expected cap at 300ms, got %v", got)
	}
}
