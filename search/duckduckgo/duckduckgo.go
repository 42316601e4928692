// Package duckduckgo implements the free remote search backend using the
// DuckDuckGo Instant Answer API.
package duckduckgo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MaggiR/mafc/search"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://api.duckduckgo.com"

// Options configure the DuckDuckGo backend.
type Options struct {
	BaseURL string
	// MaxResults caps the number of related topics folded into the
	// result text.
	MaxResults int
	Timeout    time.Duration
	Retries    int
}

// Backend queries the Instant Answer API and flattens the response into a
// single evidence text block.
type Backend struct {
	client *resty.Client
	opts   Options
}

// New creates a DuckDuckGo backend. No API key is required.
func New(optFns ...func(o *Options)) *Backend {
	opts := Options{
		BaseURL:    defaultBaseURL,
		MaxResults: 3,
		Timeout:    10 * time.Second,
		Retries:    3,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		// The API rejects default Go user agents.
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36").
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)

	return &Backend{client: client, opts: opts}
}

// Name implements search.Backend.
func (b *Backend) Name() string { return "DuckDuckGo" }

// Search implements search.Backend. The abstract text and related topic
// snippets are concatenated.
func (b *Backend) Search(ctx context.Context, query string) (string, error) {
	resp, err := b.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      query,
			"format": "json",
		}).
		Get("/")
	if err != nil {
		return "", fmt.Errorf("duckduckgo request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("duckduckgo api status %d", resp.StatusCode())
	}

	body := resp.Body()
	var parts []string

	if abstract := gjson.GetBytes(body, "AbstractText"); abstract.String() != "" {
		parts = append(parts, abstract.String())
	}

	topics := gjson.GetBytes(body, "RelatedTopics").Array()
	for _, topic := range topics {
		if len(parts) >= b.opts.MaxResults+1 {
			break
		}
		if text := topic.Get("Text"); text.String() != "" {
			parts = append(parts, text.String())
		}
	}

	result := strings.TrimSpace(strings.Join(parts, "\n"))
	if result == "" {
		return "", search.ErrNoResults
	}
	return result, nil
}
