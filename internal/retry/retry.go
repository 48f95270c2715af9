// Package retry wraps network operations in a bounded
// retry-with-backoff policy. Operations are assumed idempotent (an
// object-store PUT overwrites by key), so no rollback of a failed
// attempt is performed.
package retry

import (
	"context"
	"math"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/pgbackup/internal/logging"
)

const (
	DefaultAttempts = 3
	DefaultBase     = 2 * time.Second
)

// Controller executes an operation up to Attempts times. After failed
// attempt k (counted from 1) it sleeps Base^k seconds and tries again;
// the last error is returned once the budget is spent. No jitter.
type Controller struct {
	Attempts int
	Base     time.Duration
	Log      logging.Logger
}

func NewController(attempts int, base time.Duration, log logging.Logger) *Controller {
	if attempts < 1 {
		attempts = DefaultAttempts
	}
	if base <= 0 {
		base = DefaultBase
	}
	return &Controller{Attempts: attempts, Base: base, Log: log}
}

// Sleep returns the backoff before retry number attempt+1: base
// (in seconds) raised to the power of the attempt just failed.
func Sleep(base time.Duration, attempt int) time.Duration {
	return time.Duration(math.Pow(base.Seconds(), float64(attempt)) * float64(time.Second))
}

// Do runs op under the controller's policy. name identifies the
// operation in retry log lines. The context aborts backoff waits.
func (c *Controller) Do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	attempt := 0

	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		if attempt >= c.Attempts {
			return 0, true
		}
		d := Sleep(c.Base, attempt)
		if c.Log != nil {
			c.Log.Warn(ctx, "operation failed, backing off",
				"op", name, "attempt", attempt, "of", c.Attempts, "sleep", d.String())
		}
		return d, false
	})

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := op(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
