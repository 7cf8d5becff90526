// Package connectivity is the single home for dependency health checks and
// retry-with-backoff around them. Every caller shares one policy instead of
// growing its own timeout/retry-count variant.
package connectivity

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// Policy is the shared exponential backoff policy for dependency calls.
type Policy struct {
	BaseDelay  time.Duration
	MaxRetries uint64
}

// DefaultPolicy matches the most conservative of the retry loops it replaces.
func DefaultPolicy() Policy {
	return Policy{BaseDelay: 200 * time.Millisecond, MaxRetries: 4}
}

// Do runs fn with exponential backoff and jitter. Every error from fn is
// treated as retryable; the last error is returned once retries are
// exhausted. Latency and outcome feed the package metrics.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	base := p.BaseDelay
	if base <= 0 {
		base = 200 * time.Millisecond
	}

	b := retry.NewExponential(base)
	b = retry.WithJitterPercent(10, b)
	b = retry.WithMaxRetries(p.MaxRetries, b)

	start := time.Now()
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	recordDependencyCall(time.Since(start), err)
	return err
}
