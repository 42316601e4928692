package model

import (
	"context"
	"fmt"
	"sync"
)

// Limiter enforces a maximum number of allowed model calls per session.
type Limiter struct {
	max   int
	count int
	mu    sync.Mutex
}

// NewLimiter creates a new limiter with a max number of calls.
// If max == 0, unlimited calls are allowed.
func NewLimiter(max int) *Limiter {
	return &Limiter{max: max}
}

// Increment increases the call counter and returns an error if the limit is exceeded.
func (l *Limiter) Increment() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.count++
	if l.max > 0 && l.count > l.max {
		return fmt.Errorf("exceeded max model calls: %d", l.max)
	}

	return nil
}

// Count returns the current number of calls made.
func (l *Limiter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.count
}

// Remaining returns how many calls are left before hitting the limit.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.max == 0 {
		return -1 // unlimited
	}

	return l.max - l.count
}

// Limited decorates a Generator with a per-session call budget. Once the
// budget is exceeded every further call fails, which ends the session as an
// irrecoverable backend condition.
type Limited struct {
	inner   Generator
	limiter *Limiter
}

// NewLimited wraps a Generator with the given limiter.
func NewLimited(inner Generator, limiter *Limiter) *Limited {
	return &Limited{inner: inner, limiter: limiter}
}

// Generate implements Generator.
func (l *Limited) Generate(ctx context.Context, prompt string, optFns ...func(o *Options)) (string, error) {
	if err := l.limiter.Increment(); err != nil {
		return "", err
	}
	return l.inner.Generate(ctx, prompt, optFns...)
}

// Info implements Generator.
func (l *Limited) Info() Info { return l.inner.Info() }
