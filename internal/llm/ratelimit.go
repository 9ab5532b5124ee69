package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// newRateLimiter allows requestsPerMinute calls per minute with a burst of one
// minute's worth. Zero or negative means 60 per minute.
func newRateLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
}

// waitForSlot blocks until the limiter admits one call or ctx ends.
func waitForSlot(ctx context.Context, limiter *rate.Limiter) error {
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter canceled: %w", err)
	}
	return nil
}
