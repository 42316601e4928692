package claim

import (
	"context"
	"testing"

	"github.com/MaggiR/mafc/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose_SplitsLines(t *testing.T) {
	gen := model.NewMockStatic("The Eiffel Tower is in Paris.\nThe Eiffel Tower was built in 1889.")
	d := New(gen)

	claims, err := d.Decompose(context.Background(), "The Eiffel Tower in Paris was built in 1889.")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"The Eiffel Tower is in Paris.",
		"The Eiffel Tower was built in 1889.",
	}, claims)
}

func TestDecompose_StripsListMarkers(t *testing.T) {
	gen := model.NewMockStatic("- First claim.\n* Second claim.\n1. Third claim.\n2) Fourth claim.\n\n")
	d := New(gen)

	claims, err := d.Decompose(context.Background(), "input")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"First claim.",
		"Second claim.",
		"Third claim.",
		"Fourth claim.",
	}, claims)
}

func TestDecompose_GuardrailFallsBackToInput(t *testing.T) {
	gen := model.NewMockStatic("I'm sorry, I can't do that.")
	d := New(gen)

	claims, err := d.Decompose(context.Background(), "some content")
	require.NoError(t, err)
	assert.Equal(t, []string{"some content"}, claims)
}

func TestDecompose_EmptyOutputFallsBackToInput(t *testing.T) {
	gen := model.NewMockStatic("   \n\n  ")
	d := New(gen)

	claims, err := d.Decompose(context.Background(), "some content")
	require.NoError(t, err)
	assert.Equal(t, []string{"some content"}, claims)
}
