package orchestrator

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/semaphore"

	"strengthgrid.dev/strength/internal/config"
	"strengthgrid.dev/strength/internal/core"
)

// providerPool bounds outbound concurrency to one external provider and
// retries its transient failures with exponential backoff. One pool exists
// per provider name for the lifetime of a refresh cycle.
type providerPool struct {
	sem   *semaphore.Weighted
	retry config.RetryConfig
}

func newProviderPool(concurrency int, retry config.RetryConfig) *providerPool {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &providerPool{sem: semaphore.NewWeighted(int64(concurrency)), retry: retry}
}

// run acquires a pool slot, then executes fn with retry-on-transient-failure.
// Permanent failures and invalid values are returned immediately, without
// retry, and without clobbering the last good value — the caller simply
// skips the write.
func (p *providerPool) run(ctx context.Context, fn func(ctx context.Context) (float64, error)) (float64, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return 0, err
	}
	defer p.sem.Release(1)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(p.retry.InitialInterval * float64(time.Second))
	b.Multiplier = p.retry.Factor
	b.MaxInterval = time.Duration(p.retry.MaxInterval * float64(time.Second))
	b.MaxElapsedTime = 0 // bounded by MaxAttempts below, not wall time

	var (
		value   float64
		attempt int
	)
	operation := func() error {
		attempt++
		v, err := fn(ctx)
		if err == nil {
			value = v
			return nil
		}
		if core.IsTransient(err) && attempt < p.retry.MaxAttempts {
			return err
		}
		return backoff.Permanent(err)
	}

	err := backoff.Retry(operation, backoff.WithContext(b, ctx))
	return value, err
}
