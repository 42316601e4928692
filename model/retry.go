package model

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryOptions configure the Retry decorator.
type RetryOptions struct {
	// MaxRetries is the number of re-attempts after the first call.
	MaxRetries uint64
	// BaseDelay seeds the exponential backoff.
	BaseDelay time.Duration
	// Jitter randomizes the backoff to avoid thundering herds.
	Jitter time.Duration
	// Retryable classifies whether an error is transient. The default
	// treats every non-context error as transient.
	Retryable func(error) bool
}

// Retry wraps a Generator with per-call timeout enforcement and exponential
// backoff on transient errors. Parsing layers above never retry transport
// failures themselves; they rely on this decorator and treat a surfaced
// error as fatal.
type Retry struct {
	inner Generator
	opts  RetryOptions
}

// NewRetry decorates a Generator with retry/backoff behavior.
func NewRetry(inner Generator, optFns ...func(o *RetryOptions)) *Retry {
	opts := RetryOptions{
		MaxRetries: 3,
		BaseDelay:  500 * time.Millisecond,
		Jitter:     50 * time.Millisecond,
		// Per-attempt timeouts count as transient. Parent context
		// cancellation stops the backoff loop itself.
		Retryable: func(error) bool { return true },
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Retry{inner: inner, opts: opts}
}

// Generate implements Generator.
func (r *Retry) Generate(ctx context.Context, prompt string, optFns ...func(o *Options)) (string, error) {
	callOpts := ResolveOptions(optFns...)

	backoff := retry.WithMaxRetries(r.opts.MaxRetries,
		retry.WithJitter(r.opts.Jitter, retry.NewExponential(r.opts.BaseDelay)))

	var out string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		callCtx := ctx
		if callOpts.Timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, callOpts.Timeout)
			defer cancel()
		}

		resp, callErr := r.inner.Generate(callCtx, prompt, optFns...)
		if callErr != nil {
			if r.opts.Retryable(callErr) {
				return retry.RetryableError(callErr)
			}
			return callErr
		}
		out = resp
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generate with retry: %w", err)
	}
	return out, nil
}

// Info implements Generator.
func (r *Retry) Info() Info { return r.inner.Info() }
