// Package wikidump implements the offline search backend against a locally
// hosted Wikipedia dump service. The service indexes a dump snapshot and
// exposes a small HTTP API: POST /search with {"query": ..., "top_k": ...}
// returning {"results": [{"text": ...}, ...]}.
package wikidump

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MaggiR/mafc/search"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const defaultBaseURL = "http://localhost:3500"

// Options configure the wiki dump backend.
type Options struct {
	BaseURL string
	// TopK is the number of passages requested from the dump index.
	TopK    int
	Timeout time.Duration
}

// Backend queries the local dump service and joins the returned passages.
type Backend struct {
	client *resty.Client
	opts   Options
}

// New creates a wiki dump backend pointing at a local service.
func New(optFns ...func(o *Options)) *Backend {
	opts := Options{
		BaseURL: defaultBaseURL,
		TopK:    3,
		Timeout: 10 * time.Second,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Backend{client: client, opts: opts}
}

// Name implements search.Backend.
func (b *Backend) Name() string { return "Wikipedia" }

// Search implements search.Backend.
func (b *Backend) Search(ctx context.Context, query string) (string, error) {
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"query": query, "top_k": b.opts.TopK}).
		Post("/search")
	if err != nil {
		return "", fmt.Errorf("wikidump request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("wikidump service status %d", resp.StatusCode())
	}

	var parts []string
	for _, item := range gjson.GetBytes(resp.Body(), "results").Array() {
		if text := item.Get("text"); text.String() != "" {
			parts = append(parts, text.String())
		}
	}

	result := strings.TrimSpace(strings.Join(parts, "\n"))
	if result == "" {
		return "", search.ErrNoResults
	}
	return result, nil
}
