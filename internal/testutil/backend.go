package testutil

import (
	"context"
	"sync"
)

// StubBackend is an in-memory search backend. It serves canned results by
// exact query, falling back to a default text, and records every query in
// call order.
type StubBackend struct {
	mu        sync.Mutex
	name      string
	responses map[string]string
	fallback  string
	err       error
	queries   []string
}

// NewStubBackend creates a stub that answers every query with fallback.
func NewStubBackend(fallback string) *StubBackend {
	return &StubBackend{
		name:      "stub",
		responses: make(map[string]string),
		fallback:  fallback,
	}
}

// Respond registers a canned result for an exact query.
func (b *StubBackend) Respond(query, result string) *StubBackend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses[query] = result
	return b
}

// Fail makes every subsequent call return err.
func (b *StubBackend) Fail(err error) *StubBackend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = err
	return b
}

// Name implements search.Backend.
func (b *StubBackend) Name() string { return b.name }

// Search implements search.Backend.
func (b *StubBackend) Search(_ context.Context, query string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queries = append(b.queries, query)
	if b.err != nil {
		return "", b.err
	}
	if result, ok := b.responses[query]; ok {
		return result, nil
	}
	return b.fallback, nil
}

// Queries returns a copy of all queries seen so far, in call order.
func (b *StubBackend) Queries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.queries))
	copy(out, b.queries)
	return out
}
