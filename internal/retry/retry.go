// Package retry provides the bounded exponential backoff wrapper used around
// generation service calls. Whether a failure is worth retrying is decided by
// the typed error taxonomy in internal/domain, not by inspecting messages.
package retry

import (
	"context"
	"time"

	"lessonforge/internal/domain"
)

// Config bounds a retry loop.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultConfig matches the generation pipeline contract: up to 3 attempts,
// backoff starting at 2s, doubling, capped at 10s.
var DefaultConfig = Config{
	MaxAttempts: 3,
	BaseDelay:   2 * time.Second,
	MaxDelay:    10 * time.Second,
}

// ImageConfig is the cheaper variant for non-critical image calls.
var ImageConfig = Config{
	MaxAttempts: 2,
	BaseDelay:   2 * time.Second,
	MaxDelay:    10 * time.Second,
}

// Do invokes fn until it succeeds, fails non-retryably, or exhausts the
// attempt budget. A non-retryable failure propagates unchanged after a single
// invocation. The backoff sleep respects ctx cancellation.
func Do[T any](ctx context.Context, cfg Config, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	delay := cfg.BaseDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !domain.IsRetryable(err) {
			return zero, err
		}
		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
	return zero, lastErr
}
