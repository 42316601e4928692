// Package search defines the pluggable evidence-source contract consumed
// by the search loop, plus shared decorators. Concrete backends live in the
// subpackages serper (Google via the Serper API), duckduckgo (free remote
// API) and wikidump (local offline Wikipedia service).
package search

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

// ErrNoResults signals that a query produced no usable result text. The
// search loop treats it as an unsuccessful step, not a backend failure.
var ErrNoResults = errors.New("search: no results")

// Backend executes a search query against one evidence source and returns
// the raw result text. Any error other than ErrNoResults is an
// irrecoverable backend condition the session must surface.
type Backend interface {
	// Name identifies the backend in logs and prompts.
	Name() string

	Search(ctx context.Context, query string) (string, error)
}

// RateLimited decorates a Backend with a token-bucket limiter so remote
// quotas are not exhausted by parallel sessions.
type RateLimited struct {
	inner   Backend
	limiter *rate.Limiter
}

// NewRateLimited wraps a backend with the given requests per second and
// burst size.
func NewRateLimited(inner Backend, rps float64, burst int) *RateLimited {
	return &RateLimited{inner: inner, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Name implements Backend.
func (b *RateLimited) Name() string { return b.inner.Name() }

// Search implements Backend, blocking until the limiter grants a slot or
// the context is cancelled.
func (b *RateLimited) Search(ctx context.Context, query string) (string, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return b.inner.Search(ctx, query)
}
