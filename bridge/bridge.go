// Package bridge connects a page to the data store. Every message is a
// single call bounded by a timeout with a defined fallback answer, so a slow
// or failing store never blocks or breaks the page.
package bridge

import (
	"context"
	"time"
)

// Default timeouts.
const (
	// DefaultRequestTimeout bounds a single store request.
	DefaultRequestTimeout = 5 * time.Second

	// DefaultReadyTimeout bounds the wait for a page to finish loading
	// before scrolling it.
	DefaultReadyTimeout = 12 * time.Second

	// DefaultPollInterval is the pause between readiness checks.
	DefaultPollInterval = 250 * time.Millisecond
)

// Request runs fn with a deadline of timeout. If fn fails or the deadline
// passes first, Request returns fallback together with the error.
func Request[T any](ctx context.Context, timeout time.Duration, fallback T, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return fallback, r.err
		}
		return r.v, nil
	case <-ctx.Done():
		return fallback, ctx.Err()
	}
}

// Poll calls check until it returns true, waiting interval between
// attempts. It gives up after timeout or when ctx is done and reports
// whether check succeeded. Errors from check count as "not yet".
func Poll(ctx context.Context, interval, timeout time.Duration, check func(ctx context.Context) (bool, error)) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if ok, err := check(ctx); err == nil && ok {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}
