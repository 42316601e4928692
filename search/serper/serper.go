// Package serper implements the Google search backend through the
// serper.dev API (the remote paid variant).
package serper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MaggiR/mafc/search"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://google.serper.dev"

// Options configure the Serper backend.
type Options struct {
	BaseURL string
	// K caps the number of organic results folded into the result text.
	K       int
	Timeout time.Duration
	Retries int
}

// Backend queries the Serper API and flattens the response into a single
// evidence text block.
type Backend struct {
	client *resty.Client
	opts   Options
}

// New creates a Serper backend with the given API key.
func New(apiKey string, optFns ...func(o *Options)) *Backend {
	opts := Options{
		BaseURL: defaultBaseURL,
		K:       3,
		Timeout: 10 * time.Second,
		Retries: 3,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-API-KEY", apiKey).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)

	client.AddRetryCondition(retryCondition)

	return &Backend{client: client, opts: opts}
}

// retryCondition retries network errors and server-side failures.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == 429
}

// Name implements search.Backend.
func (b *Backend) Name() string { return "Google" }

// Search implements search.Backend. The answer box, knowledge graph and
// the top organic snippets are concatenated, mirroring what a human would
// read off the first results page.
func (b *Backend) Search(ctx context.Context, query string) (string, error) {
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(map[string]any{"q": query, "num": b.opts.K}).
		Post("/search")
	if err != nil {
		return "", fmt.Errorf("serper request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("serper api status %d: %s", resp.StatusCode(), resp.String())
	}

	body := resp.Body()
	var parts []string

	if answer := gjson.GetBytes(body, "answerBox.answer"); answer.Exists() {
		parts = append(parts, answer.String())
	}
	if snippet := gjson.GetBytes(body, "answerBox.snippet"); snippet.Exists() {
		parts = append(parts, snippet.String())
	}
	if desc := gjson.GetBytes(body, "knowledgeGraph.description"); desc.Exists() {
		title := gjson.GetBytes(body, "knowledgeGraph.title").String()
		parts = append(parts, strings.TrimSpace(title+": "+desc.String()))
	}

	organic := gjson.GetBytes(body, "organic").Array()
	for i, item := range organic {
		if i >= b.opts.K {
			break
		}
		if snippet := item.Get("snippet"); snippet.Exists() {
			parts = append(parts, snippet.String())
		}
	}

	result := strings.TrimSpace(strings.Join(parts, "\n"))
	if result == "" {
		return "", search.ErrNoResults
	}
	return result, nil
}
