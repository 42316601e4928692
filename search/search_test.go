package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	calls int
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Search(_ context.Context, _ string) (string, error) {
	s.calls++
	return "result", nil
}

func TestRateLimited_PassesThrough(t *testing.T) {
	inner := &stubBackend{}
	b := NewRateLimited(inner, 100, 1)

	got, err := b.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "result", got)
	assert.Equal(t, "stub", b.Name())
	assert.Equal(t, 1, inner.calls)
}

func TestRateLimited_RespectsCancellation(t *testing.T) {
	inner := &stubBackend{}
	// One call per hour, burst 1: the second call would block.
	b := NewRateLimited(inner, 1.0/3600, 1)

	_, err := b.Search(context.Background(), "q")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = b.Search(ctx, "q")
	assert.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}
