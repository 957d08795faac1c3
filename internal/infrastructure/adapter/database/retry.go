package database

import (
	"context"
	"math/rand"
	"strings"
	"time"

	coreport "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
)

// RetryConfig tunes the transient-error retry loop
type RetryConfig struct {
	MaxAttempts  int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	JitterFactor float64 // 0.0-1.0, fraction of the delay added as jitter
}

// DefaultRetryConfig is the tuning used by the repositories
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  5,
		BaseDelay:    100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		JitterFactor: 0.2,
	}
}

// RetryOnTransientError runs op, retrying with exponential backoff while it
// fails transiently. Non-transient errors return immediately; ctx
// cancellation stops the loop between attempts.
func RetryOnTransientError(
	ctx context.Context,
	cfg RetryConfig,
	op func() error,
	logger coreport.Logger,
) error {
	var err error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if !isTransientError(err) {
			return err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		delay := backoffDelay(attempt, cfg)
		logger.Warn("Transient database error, retrying", map[string]any{
			"attempt":      attempt,
			"max_attempts": cfg.MaxAttempts,
			"error":        err.Error(),
			"retry_after":  delay.String(),
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	logger.Error("Retries exhausted for database operation", map[string]any{
		"attempts": cfg.MaxAttempts,
		"error":    err.Error(),
	})
	return err
}

// backoffDelay doubles the base delay per attempt, caps it, and adds jitter
// so concurrent retries spread out
func backoffDelay(attempt int, cfg RetryConfig) time.Duration {
	delay := cfg.BaseDelay << uint(attempt-1)
	if delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}
	if cfg.JitterFactor > 0 {
		delay += time.Duration(rand.Float64() * cfg.JitterFactor * float64(delay))
	}
	return delay
}

func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"deadlock",
		"serialization",
		"connection reset",
		"connection refused",
		"timeout",
		"too many connections",
		"server closed",
		"broken pipe",
		"eof",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
