// Package judge turns gathered evidence into a final verdict. A Judge asks
// the model for a verdict, extracts a label from the free-form response and
// regenerates from scratch up to a retry budget when no label can be found.
package judge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MaggiR/mafc/evidence"
	"github.com/MaggiR/mafc/label"
	"github.com/MaggiR/mafc/logging"
	"github.com/MaggiR/mafc/model"
	"github.com/MaggiR/mafc/prompt"
)

// Mode selects the verdict prompt family.
type Mode int

const (
	// ModeJudge presents the full fact-checking document and expects the
	// bare verdict in backticks.
	ModeJudge Mode = iota
	// ModeReason asks for written reasoning ending in a bracketed verdict,
	// so the response doubles as the justification.
	ModeReason
)

// state tracks a verdict session. The session leaves stateJudging exactly
// once, into stateDecided or stateRefused.
type state int

const (
	stateJudging state = iota
	stateRefused
	stateDecided
)

// Options configure a Judge. Construct via New which applies defaults.
type Options struct {
	// Mode selects the prompt family and the matching extraction mode.
	Mode Mode
	// MaxRetries is the number of fresh verdict generations after the
	// first one, so a session issues at most 1+MaxRetries.
	MaxRetries int
	// Candidates are the labels offered to the model. RefusedToAnswer is
	// always reachable as a fallback and must not be listed.
	Candidates []label.Label
	// Logger receives verdict progress. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Judge produces a verdict for a claim given its evidence.
type Judge struct {
	gen       model.Generator
	opts      Options
	extractor *Extractor
}

// Verdict is the outcome of one verdict session.
type Verdict struct {
	// Label is the final category. RefusedToAnswer when the retry budget
	// ran out on refusals or unparseable responses.
	Label label.Label
	// Justification is the raw response the verdict was drawn from. On an
	// exhausted retry budget it is the last response, kept for diagnosis.
	Justification string
	// Attempts counts the verdict generations issued, corrective
	// re-prompts excluded.
	Attempts int
}

// New constructs a Judge around a generator.
func New(gen model.Generator, optFns ...func(o *Options)) *Judge {
	opts := Options{
		Mode:       ModeJudge,
		MaxRetries: 2,
		Candidates: label.Candidates(),
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	extractMode := ExtractLastCodeSpan
	if opts.Mode == ModeReason {
		extractMode = ExtractFirstBrackets
	}

	return &Judge{
		gen:       gen,
		opts:      opts,
		extractor: NewExtractor(gen, extractMode, opts.Candidates, opts.Logger),
	}
}

// Judge runs a verdict session for a claim over its evidence. A non-nil
// error means a model failure; parsing trouble is absorbed by the retry
// budget and ends in a RefusedToAnswer verdict instead.
func (j *Judge) Judge(ctx context.Context, claim string, ev *evidence.Store) (Verdict, error) {
	p, err := j.buildPrompt(claim, ev)
	if err != nil {
		return Verdict{}, err
	}

	start := time.Now()
	st := stateJudging
	var decided label.Label
	var lastResp string
	attempts := 0

	for attempt := 0; attempt <= j.opts.MaxRetries && st == stateJudging; attempt++ {
		if err := ctx.Err(); err != nil {
			return Verdict{}, err
		}

		resp, err := j.gen.Generate(ctx, p)
		if err != nil {
			return Verdict{}, fmt.Errorf("generate verdict: %w", err)
		}
		attempts++
		lastResp = resp

		l, err := j.extractor.Extract(ctx, resp)
		switch {
		case errors.Is(err, ErrNoVerdict):
			j.opts.Logger.Warn("No verdict found, regenerating", "attempt", attempts)
		case err != nil:
			return Verdict{}, err
		case l == label.RefusedToAnswer:
			// A refusal costs a retry like a parse failure. The session
			// only settles on RefusedToAnswer once the budget is gone.
			j.opts.Logger.Warn("Model refused a verdict, regenerating", "attempt", attempts)
		default:
			decided = l
			st = stateDecided
		}
	}

	if st == stateJudging {
		j.opts.Logger.Warn("Verdict retry budget exhausted", "attempts", attempts)
		st = stateRefused
	}
	if st == stateRefused {
		decided = label.RefusedToAnswer
	}

	j.opts.Logger.Info("Verdict session finished",
		"verdict", decided.String(), "attempts", attempts, "duration", time.Since(start))

	return Verdict{Label: decided, Justification: lastResp, Attempts: attempts}, nil
}

// buildPrompt renders the verdict prompt for the configured mode.
func (j *Judge) buildPrompt(claim string, ev *evidence.Store) (string, error) {
	labels := label.Values(j.opts.Candidates)
	if j.opts.Mode == ModeReason {
		return prompt.Reason(claim, ev.Knowledge(), labels)
	}
	return prompt.Judge(document(claim, ev), labels)
}

// document renders the claim and its evidence into the record handed to
// the judge-mode prompt.
func document(claim string, ev *evidence.Store) string {
	var b strings.Builder
	b.WriteString("Claim: ")
	b.WriteString(claim)
	b.WriteString("\n\nEvidence:\n")
	results := ev.Results()
	if len(results) == 0 {
		b.WriteString("N/A\n")
		return b.String()
	}
	for _, r := range results {
		b.WriteString("Query: ")
		b.WriteString(r.Query)
		b.WriteString("\nResult: ")
		if r.HasResult() {
			b.WriteString(r.Result)
		} else {
			b.WriteString("N/A")
		}
		b.WriteString("\n")
	}
	return b.String()
}
