package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	l, ok := Parse("supported")
	require.True(t, ok)
	assert.Equal(t, Supported, l)

	l, ok = Parse("refused to answer")
	require.True(t, ok)
	assert.Equal(t, RefusedToAnswer, l)

	_, ok = Parse("maybe")
	assert.False(t, ok)
}

func TestMatch_ExactBeforeSubstring(t *testing.T) {
	l, ok := Match("refuted", Candidates())
	require.True(t, ok)
	assert.Equal(t, Refuted, l)
}

func TestMatch_Substring(t *testing.T) {
	l, ok := Match("the claim is clearly refuted by the evidence", Candidates())
	require.True(t, ok)
	assert.Equal(t, Refuted, l)

	l, ok = Match("there is not enough info here", Candidates())
	require.True(t, ok)
	assert.Equal(t, NotEnoughInfo, l)
}

// Table order decides ties: a token containing aliases of two candidates
// resolves to the earlier table entry.
func TestMatch_TableOrderTieBreak(t *testing.T) {
	l, ok := Match("supported or refuted", Candidates())
	require.True(t, ok)
	assert.Equal(t, Supported, l)
}

func TestMatch_RespectsCandidateSet(t *testing.T) {
	_, ok := Match("supported", []Label{Refuted, NotEnoughInfo})
	assert.False(t, ok)
}

func TestMatch_NoMatch(t *testing.T) {
	_, ok := Match("banana", Candidates())
	assert.False(t, ok)
}

func TestCandidates_ExcludesRefusal(t *testing.T) {
	for _, c := range Candidates() {
		assert.NotEqual(t, RefusedToAnswer, c)
	}
}

func TestValues(t *testing.T) {
	assert.Equal(t, []string{"supported", "refuted", "not enough information"}, Values(Candidates()))
}
