package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

var (
	// ErrRateLimit indicates that the API rate limit has been exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryOptions configures WithRetry. Zero values take the defaults below.
type RetryOptions struct {
	// Logger receives one warning per failed attempt that will be retried.
	Logger       *slog.Logger
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

func (o RetryOptions) withDefaults() RetryOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = 100 * time.Millisecond
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 30 * time.Second
	}
	if o.Multiplier <= 0 {
		o.Multiplier = 2.0
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// backoff returns the delay after one that just elapsed, capped at MaxDelay.
func (o RetryOptions) backoff(delay time.Duration) time.Duration {
	next := time.Duration(float64(delay) * o.Multiplier)
	if next > o.MaxDelay {
		return o.MaxDelay
	}
	return next
}

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// StatusError classifies an HTTP failure: 429 and 5xx may be retried, anything
// else is final.
func StatusError(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &RetryableError{Err: fmt.Errorf("%w: %w", ErrRateLimit, err), Retryable: true}
	}
	return &RetryableError{Err: err, Retryable: status >= http.StatusInternalServerError}
}

// WithRetry runs operation until it succeeds, fails with a final error or
// runs out of attempts. Context errors and RetryableError{Retryable: false}
// are final. A rate-limit error waits MaxDelay before the next attempt.
func WithRetry(ctx context.Context, operation func() error, opts RetryOptions) error {
	opts = opts.withDefaults()
	delay := opts.InitialDelay

	for attempt := 1; ; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if attempt >= opts.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, opts.MaxAttempts, err)
		}

		wait := delay
		if errors.Is(err, ErrRateLimit) {
			wait = opts.MaxDelay
		}
		opts.Logger.Warn("classifier call failed, retrying",
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"delay", wait,
			"error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = opts.backoff(wait)
	}
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var re *RetryableError
	return !errors.As(err, &re) || re.Retryable
}
