// Package retryx implements a small retry-with-classifier combinator: an
// operation is re-run while a caller-supplied predicate classifies its error
// as retryable, with exponential backoff between attempts.
//
// The zero configuration mirrors the metadata save policy: 10 attempts
// total, waits of 1s, 2s, 4s, ... capped at 10s, and the last error returned
// unmodified once attempts are exhausted.
package retryx

import (
	"context"
	"time"
)

const (
	DefaultMaxAttempts = 10
	DefaultBaseDelay   = 1 * time.Second
	DefaultMaxDelay    = 10 * time.Second
)

type config struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// Option customizes a Do call.
type Option func(*config)

// WithMaxAttempts bounds the total number of attempts (initial try included).
func WithMaxAttempts(n int) Option {
	return func(c *config) { c.maxAttempts = n }
}

// WithBaseDelay sets the wait before the first retry; subsequent waits double.
func WithBaseDelay(d time.Duration) Option {
	return func(c *config) { c.baseDelay = d }
}

// WithMaxDelay caps the exponential wait.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) { c.maxDelay = d }
}

// withSleep is a test seam: it replaces the context-aware sleep.
func withSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *config) { c.sleep = fn }
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do runs op, re-running it while retryable(err) reports true, up to the
// configured attempt bound. Errors the classifier rejects propagate
// immediately, unmodified. When the bound is exhausted the last error is
// returned as-is rather than being wrapped into a generic "retries
// exhausted" value, so callers can still match it with errors.Is.
//
// Do never caches anything between attempts; op itself must re-acquire
// whatever state it needs on every call.
func Do(ctx context.Context, op func(ctx context.Context) error, retryable func(error) bool, opts ...Option) error {
	cfg := &config{
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		maxDelay:    DefaultMaxDelay,
		sleep:       sleepCtx,
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.maxAttempts < 1 {
		cfg.maxAttempts = 1
	}

	delay := cfg.baseDelay
	var err error
	for attempt := 1; ; attempt++ {
		err = op(ctx)
		if err == nil || !retryable(err) {
			return err
		}
		if attempt >= cfg.maxAttempts {
			return err
		}
		if serr := cfg.sleep(ctx, delay); serr != nil {
			return serr
		}
		delay *= 2
		if delay > cfg.maxDelay {
			delay = cfg.maxDelay
		}
	}
}
