// Package claim splits free-form input into atomic, independently
// verifiable claims using the model.
package claim

import (
	"context"
	"fmt"
	"strings"

	"github.com/MaggiR/mafc/internal/util"
	"github.com/MaggiR/mafc/logging"
	"github.com/MaggiR/mafc/model"
	"github.com/MaggiR/mafc/prompt"
)

// Options configure a Decomposer.
type Options struct {
	// Logger receives decomposition progress. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Decomposer splits text into atomic claims. It degrades gracefully: when
// the model refuses or produces nothing usable, the input is returned as a
// single claim so checking can still proceed.
type Decomposer struct {
	gen  model.Generator
	opts Options
}

// New constructs a Decomposer around a generator.
func New(gen model.Generator, optFns ...func(o *Options)) *Decomposer {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Decomposer{gen: gen, opts: opts}
}

// Decompose splits content into atomic claims, one per returned element, in
// input order. The result is never empty on a nil error.
func (d *Decomposer) Decompose(ctx context.Context, content string) ([]string, error) {
	p, err := prompt.Decompose(content)
	if err != nil {
		return nil, err
	}
	resp, err := d.gen.Generate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("decompose: %w", err)
	}

	if util.IsGuardrailHit(resp) {
		d.opts.Logger.Warn("Guardrail hit while decomposing, checking the input as one claim")
		return []string{content}, nil
	}

	claims := parseClaims(resp)
	if len(claims) == 0 {
		d.opts.Logger.Warn("Decomposition produced no claims, checking the input as one claim")
		return []string{content}, nil
	}
	d.opts.Logger.Debug("Decomposed content", "claims", len(claims))
	return claims, nil
}

// parseClaims splits the model output into one claim per line, dropping
// bullets, list numbering and empty lines.
func parseClaims(resp string) []string {
	var claims []string
	for _, line := range strings.Split(resp, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		line = trimOrdinal(line)
		if line == "" {
			continue
		}
		claims = append(claims, line)
	}
	return claims
}

// trimOrdinal strips a leading "1." / "2)" style list marker.
func trimOrdinal(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimSpace(line[i+1:])
	}
	return line
}
