// Package searcher drives the iterative evidence-gathering loop: propose a
// query with the model, execute it against a search backend, deduplicate,
// summarize overlong results and decide when enough evidence exists.
package searcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MaggiR/mafc/evidence"
	"github.com/MaggiR/mafc/internal/util"
	"github.com/MaggiR/mafc/logging"
	"github.com/MaggiR/mafc/model"
	"github.com/MaggiR/mafc/prompt"
	"github.com/MaggiR/mafc/search"
)

// Outcome reports which terminal condition ended a search session.
type Outcome int

const (
	// OutcomeExhausted means the step budget ran out before the evidence
	// was judged sufficient.
	OutcomeExhausted Outcome = iota
	// OutcomeSufficient means the sufficiency check stopped the loop early.
	OutcomeSufficient
)

// String returns a human readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSufficient:
		return "sufficient"
	default:
		return "exhausted"
	}
}

// state tracks the loop through its lifecycle. The loop runs while in
// stateSearching and leaves it exactly once.
type state int

const (
	stateSearching state = iota
	stateSufficient
	stateExhausted
)

// errStepFailed marks a step that produced no usable query or result. It
// never leaves the package; failed steps are absorbed by the step budget.
var errStepFailed = errors.New("searcher: no usable search this step")

// Options configure a Searcher. The zero value is not usable; construct
// via New which applies the defaults below.
type Options struct {
	// MaxSteps bounds the number of search steps per session. Failed
	// steps count too.
	MaxSteps int
	// StepRetries is the number of in-step retries after a step produced
	// no usable query or result.
	StepRetries int
	// LimitSearch enables the model-mediated sufficiency check after
	// every step.
	LimitSearch bool
	// Summarize replaces results longer than SummaryThreshold with a
	// model-generated summary to bound prompt growth.
	Summarize bool
	// SummaryThreshold is the result length, in bytes, above which
	// summarization kicks in.
	SummaryThreshold int
	// Logger receives loop progress. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Searcher gathers evidence for a claim from a pluggable search backend.
type Searcher struct {
	gen     model.Generator
	backend search.Backend
	opts    Options
}

// New constructs a Searcher around a generator and a search backend.
func New(gen model.Generator, backend search.Backend, optFns ...func(o *Options)) *Searcher {
	opts := Options{
		MaxSteps:         5,
		StepRetries:      1,
		LimitSearch:      true,
		Summarize:        true,
		SummaryThreshold: 728,
		Logger:           logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Searcher{gen: gen, backend: backend, opts: opts}
}

// Search runs the evidence-gathering loop for a claim. The returned store
// is owned by the caller and read-only from here on. A non-nil error means
// an irrecoverable backend failure; parsing irregularities never surface
// as errors.
func (s *Searcher) Search(ctx context.Context, claim string) (*evidence.Store, Outcome, error) {
	store := evidence.NewStore()
	st := stateSearching

	for step := 0; step < s.opts.MaxSteps && st == stateSearching; step++ {
		if err := ctx.Err(); err != nil {
			return store, OutcomeExhausted, err
		}

		ok, err := s.step(ctx, claim, store)
		if err != nil {
			return store, OutcomeExhausted, err
		}
		if !ok {
			s.opts.Logger.Warn("Unsuccessful parsing for next search, continuing", "step", step+1)
		}

		if s.opts.LimitSearch {
			enough, err := s.sufficientKnowledge(ctx, claim, store)
			if err != nil {
				return store, OutcomeExhausted, err
			}
			if enough {
				st = stateSufficient
			}
		}
	}

	if st == stateSearching {
		st = stateExhausted
	}

	outcome := OutcomeExhausted
	if st == stateSufficient {
		outcome = OutcomeSufficient
	}
	s.opts.Logger.Info("Search session finished", "outcome", outcome.String(), "evidence", store.Len())

	return store, outcome, nil
}

// step executes one search step including its in-step retries. It reports
// whether a record was appended.
func (s *Searcher) step(ctx context.Context, claim string, store *evidence.Store) (bool, error) {
	for attempt := 0; attempt <= s.opts.StepRetries; attempt++ {
		rec, err := s.nextSearch(ctx, claim, store)
		if err != nil {
			if errors.Is(err, errStepFailed) {
				continue
			}
			return false, err
		}
		return store.Add(rec), nil
	}
	return false, nil
}

// nextSearch proposes the next query, executes it and builds the evidence
// record, applying result deduplication and summarization.
func (s *Searcher) nextSearch(ctx context.Context, claim string, store *evidence.Store) (evidence.SearchResult, error) {
	var zero evidence.SearchResult

	query, err := s.proposeQuery(ctx, claim, store)
	if err != nil {
		return zero, err
	}
	if query == "" || store.HasQuery(query) {
		return zero, errStepFailed
	}

	start := time.Now()
	raw, err := s.backend.Search(ctx, query)
	if err != nil && !errors.Is(err, search.ErrNoResults) {
		return zero, fmt.Errorf("search %s: %w", s.backend.Name(), err)
	}
	s.opts.Logger.Info("Search completed",
		"backend", s.backend.Name(), "query", query, "duration", time.Since(start), "hit", raw != "")

	if raw == "" {
		return zero, errStepFailed
	}

	// Dedup by full result text, not URL. The query stays blocked so it
	// cannot be issued again, but the evidence is not polluted.
	if store.HasResult(raw) {
		s.opts.Logger.Debug("Duplicate result, blocking query", "query", query)
		return evidence.SearchResult{Query: query}, nil
	}

	if s.opts.Summarize && len(raw) > s.opts.SummaryThreshold {
		raw, err = s.summarize(ctx, query, raw)
		if err != nil {
			return zero, err
		}
	}

	return evidence.SearchResult{Query: query, Result: raw}, nil
}

// proposeQuery obtains the next query from the model, recovering from
// guardrail refusals and wrong formatting, and re-prompting once when the
// proposal duplicates an already-issued query.
func (s *Searcher) proposeQuery(ctx context.Context, claim string, store *evidence.Store) (string, error) {
	p, err := prompt.NextQuery(claim, store.Knowledge(), store.Queries(), s.backend.Name())
	if err != nil {
		return "", err
	}
	resp, err := s.gen.Generate(ctx, p)
	if err != nil {
		return "", fmt.Errorf("propose query: %w", err)
	}
	resp = strings.ReplaceAll(resp, `"`, "")

	var query string
	if util.IsGuardrailHit(resp) {
		s.opts.Logger.Warn("Guardrail hit while proposing query, falling back to the claim itself")
		query = "[" + claim + "]"
	} else {
		query = util.FirstCodeBlock(resp)
		if query == "" {
			query, err = s.extractQuery(ctx, resp)
			if err != nil {
				return "", err
			}
		}
	}
	if query == "" {
		return "", nil
	}

	if store.HasQuery(query) {
		s.opts.Logger.Debug("Duplicate query, asking for a different one", "stale", query)
		mp, err := prompt.Mixer(claim, query)
		if err != nil {
			return "", err
		}
		mixed, err := s.gen.Generate(ctx, mp)
		if err != nil {
			return "", fmt.Errorf("mix query: %w", err)
		}
		query = util.CleanQuery(mixed)
		s.opts.Logger.Debug("Replacement query", "query", query)
	}

	return query, nil
}

// extractQuery escalates to a model-mediated extraction after the verbose
// response contained no fenced query.
func (s *Searcher) extractQuery(ctx context.Context, response string) (string, error) {
	s.opts.Logger.Debug("No query found in output, likely due to wrong formatting", "response", response)
	out, err := s.gen.Generate(ctx, prompt.ExtractQuery(response))
	if err != nil {
		return "", fmt.Errorf("extract query: %w", err)
	}
	return util.CleanQuery(out), nil
}

// summarize condenses an overlong search result.
func (s *Searcher) summarize(ctx context.Context, query, result string) (string, error) {
	p, err := prompt.Summarize(query, result)
	if err != nil {
		return "", err
	}
	summary, err := s.gen.Generate(ctx, p)
	if err != nil {
		return "", fmt.Errorf("summarize result: %w", err)
	}
	if summary == "" {
		return result, nil
	}
	return summary, nil
}

// sufficientKnowledge asks the model whether the accumulated evidence is
// enough to decide the claim. Anything but an exact "sufficient" counts as
// insufficient; there is no partial-credit parsing.
func (s *Searcher) sufficientKnowledge(ctx context.Context, claim string, store *evidence.Store) (bool, error) {
	resp, err := s.gen.Generate(ctx, prompt.Sufficiency(claim, store.Knowledge()))
	if err != nil {
		return false, fmt.Errorf("sufficiency check: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(resp), "sufficient"), nil
}
