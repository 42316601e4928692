package model

import (
	"context"
	"sync"
	"time"
)

// Options carry the per-call generation knobs. Defaults favor near
// deterministic output, which the parsing contracts downstream rely on.
type Options struct {
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
}

// DefaultOptions returns the baseline generation options.
func DefaultOptions() Options {
	return Options{
		Temperature: 0.01,
		MaxTokens:   2048,
		Timeout:     60 * time.Second,
	}
}

// ResolveOptions applies option functions on top of the defaults.
func ResolveOptions(optFns ...func(o *Options)) Options {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// Info contains metadata about a generator implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Generator is the minimal interface the search and verdict loops require:
// one blocking prompt-in, text-out call. Implementations own transport
// concerns; callers treat a returned error as an irrecoverable backend
// failure.
type Generator interface {
	Generate(ctx context.Context, prompt string, optFns ...func(o *Options)) (string, error)

	// Info returns information about the generator implementation.
	Info() Info
}

// Mock is a lightweight in-memory Generator useful for tests & examples.
// It serves canned responses by exact prompt, falls back to a scripted
// sequence (cycling when exhausted), then to a static response. Every
// prompt is recorded for assertions.
type Mock struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	script    []string
	scriptIdx int
	static    string
	prompts   []string
}

// NewMock constructs an empty Mock generator.
func NewMock() *Mock {
	return &Mock{
		info:      Info{Name: "mock", Provider: "mock"},
		responses: make(map[string]string),
	}
}

// NewMockStatic constructs a Mock that always returns the same response.
func NewMockStatic(response string) *Mock {
	m := NewMock()
	m.static = response
	return m
}

// NewMockScript constructs a Mock that returns the given responses in
// order, cycling once the script is exhausted.
func NewMockScript(responses ...string) *Mock {
	m := NewMock()
	m.script = responses
	return m
}

// AddResponse registers a deterministic canned completion for an exact prompt.
func (m *Mock) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// Generate implements Generator.
func (m *Mock) Generate(ctx context.Context, prompt string, _ ...func(o *Options)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)

	if resp, ok := m.responses[prompt]; ok {
		return resp, nil
	}
	if len(m.script) > 0 {
		resp := m.script[m.scriptIdx%len(m.script)]
		m.scriptIdx++
		return resp, nil
	}
	return m.static, nil
}

// Info implements Generator.
func (m *Mock) Info() Info { return m.info }

// Prompts returns a copy of all prompts seen so far, in call order.
func (m *Mock) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Calls returns the number of Generate invocations.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
