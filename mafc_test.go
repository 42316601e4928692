package mafc

import (
	"context"
	"testing"

	"github.com/MaggiR/mafc/internal/testutil"
	"github.com/MaggiR/mafc/judge"
	"github.com/MaggiR/mafc/label"
	"github.com/MaggiR/mafc/model"
	"github.com/MaggiR/mafc/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_SingleClaim(t *testing.T) {
	gen := model.NewMockScript(
		"```\nsky color\n```",
		"sufficient",
		"`refuted`",
	)
	backend := testutil.NewStubBackend("The sky is blue, not green.")

	fc := New(gen, backend)
	reports, err := fc.Check(context.Background(), "The sky is green.")
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "The sky is green.", r.Claim)
	assert.Equal(t, label.Refuted, r.Verdict)
	require.Len(t, r.Evidence, 1)
	assert.Equal(t, "sky color", r.Evidence[0].Query)
}

func TestCheck_ReasonModeJustification(t *testing.T) {
	reasoning := "The evidence contradicts the claim. Therefore it is [refuted]."
	gen := model.NewMockScript(
		"```\nq\n```",
		"sufficient",
		reasoning,
	)
	backend := testutil.NewStubBackend("contradicting text")

	fc := New(gen, backend, func(o *Options) {
		o.Mode = judge.ModeReason
	})
	reports, err := fc.Check(context.Background(), "claim")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, label.Refuted, reports[0].Verdict)
	assert.Equal(t, reasoning, reports[0].Justification)
}

func TestCheck_DecomposedClaimsAggregate(t *testing.T) {
	content := "Paris is in France and has 90 million inhabitants."

	// Exact-prompt responses take precedence over the script, so the
	// decomposition answer is pinned while both check sessions run off
	// the script back to back.
	gen := model.NewMockScript(
		"```\nparis country\n```", "sufficient", "`supported`",
		"```\nparis population\n```", "sufficient", "`refuted`",
	)
	dp, err := prompt.Decompose(content)
	require.NoError(t, err)
	gen.AddResponse(dp, "Paris is in France.\nParis has 90 million inhabitants.")

	backend := testutil.NewStubBackend("some evidence").
		Respond("paris country", "Paris is the capital of France.").
		Respond("paris population", "Paris has about 2.1 million inhabitants.")

	fc := New(gen, backend, func(o *Options) {
		o.Decompose = true
	})
	reports, err := fc.Check(context.Background(), content)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, content, reports[0].Claim)
	assert.Equal(t, label.Refuted, reports[0].Verdict)
	assert.Equal(t, "Paris is in France.", reports[1].Claim)
	assert.Equal(t, label.Supported, reports[1].Verdict)
	assert.Equal(t, "Paris has 90 million inhabitants.", reports[2].Claim)
	assert.Equal(t, label.Refuted, reports[2].Verdict)
}

func TestCheckAll_PreservesOrder(t *testing.T) {
	// limit 1 serializes the checks so the shared script stays aligned.
	gen := model.NewMockScript(
		"```\nq one\n```", "sufficient", "`supported`",
		"```\nq two\n```", "sufficient", "`refuted`",
	)
	backend := testutil.NewStubBackend("evidence")

	fc := New(gen, backend)
	reports, err := fc.CheckAll(context.Background(), []string{"claim one", "claim two"}, 1)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "claim one", reports[0].Claim)
	assert.Equal(t, label.Supported, reports[0].Verdict)
	assert.Equal(t, "claim two", reports[1].Claim)
	assert.Equal(t, label.Refuted, reports[1].Verdict)
}

func TestCheck_ModelCallBudget(t *testing.T) {
	fc := New(model.NewMockScript(
		"```\nq\n```", "insufficient",
	), testutil.NewStubBackend("evidence"), func(o *Options) {
		o.MaxModelCalls = 1
		o.MaxSteps = 3
	})

	_, err := fc.Check(context.Background(), "claim")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeded max model calls")
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		labels []label.Label
		want   label.Label
	}{
		{"empty", nil, label.NotEnoughInfo},
		{"all supported", []label.Label{label.Supported, label.Supported}, label.Supported},
		{"one refuted wins", []label.Label{label.Supported, label.Refuted, label.NotEnoughInfo}, label.Refuted},
		{"undecided beats refusal", []label.Label{label.Supported, label.NotEnoughInfo, label.RefusedToAnswer}, label.NotEnoughInfo},
		{"refusal over support", []label.Label{label.Supported, label.RefusedToAnswer}, label.RefusedToAnswer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.labels))
		})
	}
}
