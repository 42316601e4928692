// Package evaluation measures checker quality against labeled samples.
package evaluation

import (
	"context"
	"fmt"

	"github.com/MaggiR/mafc/label"
)

// Sample pairs a claim with its gold verdict.
type Sample struct {
	Claim string
	Gold  label.Label
}

// Checker is the minimal surface the evaluator needs: one claim in, one
// verdict out.
type Checker interface {
	Verdict(ctx context.Context, claim string) (label.Label, error)
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, claim string) (label.Label, error)

// Verdict implements Checker.
func (f CheckerFunc) Verdict(ctx context.Context, claim string) (label.Label, error) {
	return f(ctx, claim)
}

// Outcome records one evaluated sample.
type Outcome struct {
	Sample    Sample
	Predicted label.Label
	Correct   bool
}

// Result aggregates an evaluation run.
type Result struct {
	Outcomes []Outcome
	// Confusion counts predictions per (gold, predicted) pair.
	Confusion map[label.Label]map[label.Label]int
}

// Accuracy returns the fraction of correct predictions, 0 for an empty run.
func (r *Result) Accuracy() float64 {
	if len(r.Outcomes) == 0 {
		return 0
	}
	var correct int
	for _, o := range r.Outcomes {
		if o.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(r.Outcomes))
}

// Refusals returns how many samples ended in a refusal verdict.
func (r *Result) Refusals() int {
	var n int
	for _, o := range r.Outcomes {
		if o.Predicted == label.RefusedToAnswer {
			n++
		}
	}
	return n
}

// Evaluator runs a Checker over labeled samples.
type Evaluator struct {
	checker Checker
}

// New creates an Evaluator around a checker.
func New(checker Checker) *Evaluator {
	return &Evaluator{checker: checker}
}

// Evaluate checks every sample in order and aggregates the outcomes. The
// first checker error aborts the run.
func (e *Evaluator) Evaluate(ctx context.Context, samples []Sample) (*Result, error) {
	result := &Result{
		Confusion: make(map[label.Label]map[label.Label]int),
	}

	for i, s := range samples {
		predicted, err := e.checker.Verdict(ctx, s.Claim)
		if err != nil {
			return nil, fmt.Errorf("evaluate sample %d: %w", i, err)
		}

		result.Outcomes = append(result.Outcomes, Outcome{
			Sample:    s,
			Predicted: predicted,
			Correct:   predicted == s.Gold,
		})
		if result.Confusion[s.Gold] == nil {
			result.Confusion[s.Gold] = make(map[label.Label]int)
		}
		result.Confusion[s.Gold][predicted]++
	}

	return result, nil
}
