package searcher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MaggiR/mafc/internal/testutil"
	"github.com/MaggiR/mafc/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fenced(query string) string {
	return "```\n" + query + "\n```"
}

func TestSearch_StopsOnSufficientKnowledge(t *testing.T) {
	gen := model.NewMockScript(
		fenced("sky color"),
		"insufficient",
		fenced("is the sky green"),
		"sufficient",
	)
	backend := testutil.NewStubBackend("").
		Respond("sky color", "The sky is blue.").
		Respond("is the sky green", "No, the sky appears blue, not green.")

	s := New(gen, backend, func(o *Options) {
		o.Summarize = false
	})

	store, outcome, err := s.Search(context.Background(), "The sky is green.")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSufficient, outcome)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 4, gen.Calls())
	assert.Equal(t, []string{"sky color", "is the sky green"}, backend.Queries())
}

func TestSearch_ExhaustsStepBudget(t *testing.T) {
	gen := model.NewMockScript(
		fenced("q one"),
		"insufficient",
		fenced("q two"),
		"more is needed", // anything but "sufficient" means insufficient
	)
	backend := testutil.NewStubBackend("").
		Respond("q one", "result one").
		Respond("q two", "result two")

	s := New(gen, backend, func(o *Options) {
		o.MaxSteps = 2
		o.Summarize = false
	})

	store, outcome, err := s.Search(context.Background(), "claim")
	require.NoError(t, err)
	assert.Equal(t, OutcomeExhausted, outcome)
	assert.Equal(t, 2, store.Len())
	assert.LessOrEqual(t, store.Len(), 2)
}

func TestSearch_DuplicateQueryTriggersOneMixerReprompt(t *testing.T) {
	gen := model.NewMockScript(
		fenced("same query"),
		fenced("same query"),
		"different query",
	)
	backend := testutil.NewStubBackend("").
		Respond("same query", "result one").
		Respond("different query", "result two")

	s := New(gen, backend, func(o *Options) {
		o.MaxSteps = 2
		o.LimitSearch = false
		o.Summarize = false
	})

	store, _, err := s.Search(context.Background(), "claim")
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
	assert.True(t, store.HasQuery("same query"))
	assert.True(t, store.HasQuery("different query"))

	var mixerPrompts int
	for _, p := range gen.Prompts() {
		if strings.Contains(p, "You have tried this QUERY") {
			mixerPrompts++
		}
	}
	assert.Equal(t, 1, mixerPrompts)
}

func TestSearch_DuplicateResultStoredAbsent(t *testing.T) {
	gen := model.NewMockScript(
		fenced("q one"),
		fenced("q two"),
	)
	// Both queries return the identical result text.
	backend := testutil.NewStubBackend("the same text")

	s := New(gen, backend, func(o *Options) {
		o.MaxSteps = 2
		o.LimitSearch = false
		o.Summarize = false
	})

	store, _, err := s.Search(context.Background(), "claim")
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	results := store.Results()
	assert.True(t, results[0].HasResult())
	assert.False(t, results[1].HasResult())
	assert.Equal(t, "q two", results[1].Query)
}

func TestSearch_GuardrailFallsBackToClaimQuery(t *testing.T) {
	gen := model.NewMockScript("I cannot help with that.")
	backend := testutil.NewStubBackend("some result")

	s := New(gen, backend, func(o *Options) {
		o.MaxSteps = 1
		o.LimitSearch = false
		o.Summarize = false
	})

	store, _, err := s.Search(context.Background(), "The sky is green.")
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "[The sky is green.]", store.Results()[0].Query)
}

func TestSearch_SummarizesLongResults(t *testing.T) {
	long := strings.Repeat("a", 800)
	gen := model.NewMockScript(
		fenced("q"),
		"short summary",
	)
	backend := testutil.NewStubBackend(long)

	s := New(gen, backend, func(o *Options) {
		o.MaxSteps = 1
		o.LimitSearch = false
	})

	store, _, err := s.Search(context.Background(), "claim")
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "short summary", store.Results()[0].Result)
}

func TestSearch_ShortResultsAreNotSummarized(t *testing.T) {
	gen := model.NewMockScript(fenced("q"))
	backend := testutil.NewStubBackend("short result")

	s := New(gen, backend, func(o *Options) {
		o.MaxSteps = 1
		o.LimitSearch = false
	})

	store, _, err := s.Search(context.Background(), "claim")
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "short result", store.Results()[0].Result)
	assert.Equal(t, 1, gen.Calls())
}

func TestSearch_UnusableStepsCountTowardBudget(t *testing.T) {
	// No fenced query and the mediated extraction returns nothing either.
	gen := model.NewMockScript("rambling without a query", "")
	backend := testutil.NewStubBackend("unused")

	s := New(gen, backend, func(o *Options) {
		o.MaxSteps = 1
		o.LimitSearch = false
		o.Summarize = false
	})

	store, outcome, err := s.Search(context.Background(), "claim")
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, OutcomeExhausted, outcome)
	assert.Empty(t, backend.Queries())
}

func TestSearch_EmptyResultIsUnsuccessfulStep(t *testing.T) {
	gen := model.NewMockScript(fenced("q one"), fenced("q one"))
	backend := testutil.NewStubBackend("")

	s := New(gen, backend, func(o *Options) {
		o.MaxSteps = 1
		o.LimitSearch = false
		o.Summarize = false
	})

	store, _, err := s.Search(context.Background(), "claim")
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestSearch_BackendFailureIsFatal(t *testing.T) {
	gen := model.NewMockScript(fenced("q"))
	backend := testutil.NewStubBackend("").Fail(errors.New("connection refused"))

	s := New(gen, backend, func(o *Options) {
		o.MaxSteps = 3
		o.LimitSearch = false
	})

	_, _, err := s.Search(context.Background(), "claim")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSearch_MediatedQueryExtraction(t *testing.T) {
	gen := model.NewMockScript(
		"Sure! A good search would be about the winner of ESC 2024.",
		"winner esc 2024",
	)
	backend := testutil.NewStubBackend("Switzerland won.")

	s := New(gen, backend, func(o *Options) {
		o.MaxSteps = 1
		o.LimitSearch = false
		o.Summarize = false
	})

	store, _, err := s.Search(context.Background(), "claim")
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "winner esc 2024", store.Results()[0].Query)

	var extractionPrompts int
	for _, p := range gen.Prompts() {
		if strings.Contains(p, "Extract a simple sentence") {
			extractionPrompts++
		}
	}
	assert.Equal(t, 1, extractionPrompts)
}
