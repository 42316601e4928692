// Package mafc provides a high-level façade over the search and verdict
// loops enabling end-to-end fact checking of free-form text. Most
// applications interact with this package by:
//  1. Creating a FactChecker via New() with a generator and a search backend
//  2. Checking single claims (Check) or batches (CheckAll)
//  3. Reading the Report: verdict label, justification and the evidence trail
//
// The façade delegates evidence gathering to searcher.Searcher and verdict
// extraction to judge.Judge while keeping setup ergonomics concise. All
// defaults are safe for local development and testing.
package mafc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MaggiR/mafc/claim"
	"github.com/MaggiR/mafc/evidence"
	"github.com/MaggiR/mafc/judge"
	"github.com/MaggiR/mafc/label"
	"github.com/MaggiR/mafc/logging"
	"github.com/MaggiR/mafc/model"
	"github.com/MaggiR/mafc/search"
	"github.com/MaggiR/mafc/searcher"
)

// Options configures a FactChecker.
type Options struct {
	// Mode selects the verdict prompt family.
	Mode judge.Mode
	// Decompose splits multi-fact input into atomic claims before
	// checking. Off, the input is checked as a single claim.
	Decompose bool
	// MaxSteps bounds search steps per claim.
	MaxSteps int
	// StepRetries is the number of in-step retries after an unusable
	// search step.
	StepRetries int
	// LimitSearch enables the model-mediated sufficiency check.
	LimitSearch bool
	// MaxRetries is the number of fresh verdict generations after the
	// first one.
	MaxRetries int
	// MaxModelCalls caps the model calls a single claim check may issue.
	// 0 means unlimited.
	MaxModelCalls int
	// Logger receives progress across all stages. Defaults to NoOpLogger.
	Logger logging.Logger
}

// FactChecker verifies claims end to end: gather evidence, then judge.
type FactChecker struct {
	gen     model.Generator
	backend search.Backend
	opts    Options
}

// Report is the result of checking one claim.
type Report struct {
	// ID identifies the check session.
	ID string
	// Claim is the atomic claim that was checked.
	Claim string
	// Verdict is the final category.
	Verdict label.Label
	// Justification is the raw model response the verdict was drawn from.
	Justification string
	// Evidence is the search trail in discovery order.
	Evidence []evidence.SearchResult
	// Outcome reports how the search loop terminated.
	Outcome searcher.Outcome
	// Duration is the wall time of the whole check.
	Duration time.Duration
}

// New creates a FactChecker around a generator and a search backend.
func New(gen model.Generator, backend search.Backend, optFns ...func(o *Options)) *FactChecker {
	opts := Options{
		Mode:        judge.ModeJudge,
		MaxSteps:    5,
		StepRetries: 1,
		LimitSearch: true,
		MaxRetries:  2,
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &FactChecker{gen: gen, backend: backend, opts: opts}
}

// Check verifies content. With decomposition enabled the content is first
// split into atomic claims, each checked in its own session; the first
// returned report aggregates the per-claim verdicts. Without decomposition
// exactly one report is returned.
func (f *FactChecker) Check(ctx context.Context, content string) ([]Report, error) {
	claims := []string{content}
	if f.opts.Decompose {
		var err error
		claims, err = claim.New(f.gen, func(o *claim.Options) {
			o.Logger = f.opts.Logger
		}).Decompose(ctx, content)
		if err != nil {
			return nil, err
		}
	}

	reports := make([]Report, 0, len(claims))
	for _, c := range claims {
		r, err := f.checkOne(ctx, c)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}

	if len(reports) > 1 {
		agg := Report{
			ID:      uuid.NewString(),
			Claim:   content,
			Verdict: Aggregate(verdicts(reports)),
		}
		reports = append([]Report{agg}, reports...)
	}

	return reports, nil
}

// CheckAll verifies several contents concurrently, at most limit checks in
// flight at once (0 means unbounded). Reports are returned in input order,
// one per content; decomposition is not applied here.
func (f *FactChecker) CheckAll(ctx context.Context, contents []string, limit int) ([]Report, error) {
	reports := make([]Report, len(contents))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, c := range contents {
		g.Go(func() error {
			r, err := f.checkOne(ctx, c)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

// checkOne runs a single claim through one search session and one verdict
// session. Each session gets its own model call budget.
func (f *FactChecker) checkOne(ctx context.Context, c string) (Report, error) {
	id := uuid.NewString()
	logger := f.opts.Logger
	start := time.Now()

	gen := f.gen
	if f.opts.MaxModelCalls > 0 {
		gen = model.NewLimited(gen, model.NewLimiter(f.opts.MaxModelCalls))
	}

	s := searcher.New(gen, f.backend, func(o *searcher.Options) {
		o.MaxSteps = f.opts.MaxSteps
		o.StepRetries = f.opts.StepRetries
		o.LimitSearch = f.opts.LimitSearch
		o.Logger = logger
	})
	store, outcome, err := s.Search(ctx, c)
	if err != nil {
		return Report{}, fmt.Errorf("check %s: %w", id, err)
	}

	j := judge.New(gen, func(o *judge.Options) {
		o.Mode = f.opts.Mode
		o.MaxRetries = f.opts.MaxRetries
		o.Logger = logger
	})
	verdict, err := j.Judge(ctx, c, store)
	if err != nil {
		return Report{}, fmt.Errorf("check %s: %w", id, err)
	}

	return Report{
		ID:            id,
		Claim:         c,
		Verdict:       verdict.Label,
		Justification: verdict.Justification,
		Evidence:      store.Results(),
		Outcome:       outcome,
		Duration:      time.Since(start),
	}, nil
}

// Aggregate folds per-claim verdicts into one verdict for the whole text.
// A single refutation refutes the text; otherwise any undecided claim makes
// the text undecided; a refusal only surfaces when nothing else does.
func Aggregate(labels []label.Label) label.Label {
	if len(labels) == 0 {
		return label.NotEnoughInfo
	}
	for _, l := range labels {
		if l == label.Refuted {
			return label.Refuted
		}
	}
	for _, l := range labels {
		if l == label.NotEnoughInfo {
			return label.NotEnoughInfo
		}
	}
	for _, l := range labels {
		if l == label.RefusedToAnswer {
			return label.RefusedToAnswer
		}
	}
	return label.Supported
}

func verdicts(reports []Report) []label.Label {
	out := make([]label.Label, len(reports))
	for i, r := range reports {
		out[i] = r.Verdict
	}
	return out
}
