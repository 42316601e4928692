package judge

import (
	"context"
	"errors"
	"fmt"

	"github.com/MaggiR/mafc/internal/util"
	"github.com/MaggiR/mafc/label"
	"github.com/MaggiR/mafc/logging"
	"github.com/MaggiR/mafc/model"
	"github.com/MaggiR/mafc/prompt"
)

// ErrNoVerdict is returned by Extractor.Extract when no candidate label
// could be recovered from a response, even after the corrective re-prompt.
// Callers treat it as a retryable condition, not a failure.
var ErrNoVerdict = errors.New("judge: no verdict found in response")

// ExtractMode selects where in the response the verdict token is expected.
type ExtractMode int

const (
	// ExtractAuto tries the last inline code span first, then the first
	// square-bracketed span.
	ExtractAuto ExtractMode = iota
	// ExtractLastCodeSpan expects the verdict in the last backtick span.
	ExtractLastCodeSpan
	// ExtractFirstBrackets expects the verdict in the first square brackets.
	ExtractFirstBrackets
)

// Extractor recovers a verdict label from free-form model output. It is
// deterministic up to the single model-mediated corrective re-prompt it may
// issue when the response contains no recognizable label.
type Extractor struct {
	gen        model.Generator
	mode       ExtractMode
	candidates []label.Label
	logger     logging.Logger
}

// NewExtractor builds an Extractor resolving against the given candidate
// labels. The generator is only used for the corrective re-prompt.
func NewExtractor(gen model.Generator, mode ExtractMode, candidates []label.Label, logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Extractor{gen: gen, mode: mode, candidates: candidates, logger: logger}
}

// span isolates the part of the response that should carry the verdict.
// When no delimited span exists the whole trimmed response is used, which
// makes extraction idempotent on already-bare labels.
func (e *Extractor) span(response string) string {
	var s string
	switch e.mode {
	case ExtractLastCodeSpan:
		s = util.LastCodeSpan(response)
	case ExtractFirstBrackets:
		s = util.FirstSquareBrackets(response)
	default:
		s = util.LastCodeSpan(response)
		if s == "" {
			s = util.FirstSquareBrackets(response)
		}
	}
	if s == "" {
		s = response
	}
	return s
}

// Extract resolves a response to a label. Guardrail refusals map to
// RefusedToAnswer without any model call. An unparseable response triggers
// exactly one corrective re-prompt; if that also fails, ErrNoVerdict is
// returned and both responses are logged and discarded.
func (e *Extractor) Extract(ctx context.Context, response string) (label.Label, error) {
	if util.IsGuardrailHit(response) {
		e.logger.Warn("Verdict response hit a guardrail", "response", response)
		return label.RefusedToAnswer, nil
	}

	token := util.Normalize(e.span(response))
	if token == "" {
		// A span that normalizes to nothing carries no verdict to
		// recover; a corrective re-prompt would be guesswork.
		e.logger.Warn("Verdict span normalized to an empty token", "response", response)
		return label.RefusedToAnswer, nil
	}
	if l, ok := label.Match(token, e.candidates); ok {
		return l, nil
	}

	e.logger.Debug("No verdict label in response, issuing corrective re-prompt", "token", token)
	adjusted, err := e.gen.Generate(ctx, prompt.Adjust(label.Values(e.candidates), response))
	if err != nil {
		return "", fmt.Errorf("adjust verdict: %w", err)
	}
	if util.IsGuardrailHit(adjusted) {
		return label.RefusedToAnswer, nil
	}

	// The corrective answer must be the bare label; aliases and substrings
	// are not honored here so a second malformed answer cannot sneak through.
	token = util.Normalize(adjusted)
	for _, c := range e.candidates {
		if token == string(c) {
			return c, nil
		}
	}

	e.logger.Warn("Discarding unparseable verdict responses", "response", response, "adjusted", adjusted)
	return "", ErrNoVerdict
}
