package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/MaggiR/mafc/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	verdicts := map[string]label.Label{
		"a": label.Supported,
		"b": label.Refuted,
		"c": label.RefusedToAnswer,
	}
	e := New(CheckerFunc(func(_ context.Context, claim string) (label.Label, error) {
		return verdicts[claim], nil
	}))

	result, err := e.Evaluate(context.Background(), []Sample{
		{Claim: "a", Gold: label.Supported},
		{Claim: "b", Gold: label.Supported},
		{Claim: "c", Gold: label.Refuted},
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.0/3.0, result.Accuracy(), 1e-9)
	assert.Equal(t, 1, result.Refusals())
	assert.Equal(t, 1, result.Confusion[label.Supported][label.Supported])
	assert.Equal(t, 1, result.Confusion[label.Supported][label.Refuted])
	assert.Equal(t, 1, result.Confusion[label.Refuted][label.RefusedToAnswer])
}

func TestEvaluate_EmptyRun(t *testing.T) {
	e := New(CheckerFunc(func(context.Context, string) (label.Label, error) {
		return label.Supported, nil
	}))

	result, err := e.Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.Accuracy())
	assert.Empty(t, result.Outcomes)
}

func TestEvaluate_CheckerErrorAborts(t *testing.T) {
	e := New(CheckerFunc(func(context.Context, string) (label.Label, error) {
		return "", errors.New("backend down")
	}))

	_, err := e.Evaluate(context.Background(), []Sample{{Claim: "a", Gold: label.Supported}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")
}
