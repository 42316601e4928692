package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddRejectsDuplicateQuery(t *testing.T) {
	s := NewStore()
	require.True(t, s.Add(SearchResult{Query: "who won esc 2024", Result: "Switzerland"}))
	assert.False(t, s.Add(SearchResult{Query: "who won esc 2024", Result: "something else"}))
	assert.Equal(t, 1, s.Len())
}

func TestStore_HasQueryAndHasResult(t *testing.T) {
	s := NewStore()
	s.Add(SearchResult{Query: "q1", Result: "r1"})
	s.Add(SearchResult{Query: "q2"}) // blocked query, absent result

	assert.True(t, s.HasQuery("q1"))
	assert.True(t, s.HasQuery("q2"))
	assert.False(t, s.HasQuery("q3"))

	assert.True(t, s.HasResult("r1"))
	assert.False(t, s.HasResult("r2"))
	// An absent result never matches, even against another absent entry.
	assert.False(t, s.HasResult(""))
}

func TestStore_KnowledgeSkipsAbsentResults(t *testing.T) {
	s := NewStore()
	s.Add(SearchResult{Query: "q1", Result: "first"})
	s.Add(SearchResult{Query: "q2"})
	s.Add(SearchResult{Query: "q3", Result: "third"})

	assert.Equal(t, "first\nthird", s.Knowledge())
	assert.Equal(t, "q1\nq2\nq3", s.Queries())
}

func TestStore_EmptyJoinsAreNA(t *testing.T) {
	s := NewStore()
	assert.Equal(t, "N/A", s.Knowledge())
	assert.Equal(t, "N/A", s.Queries())

	s.Add(SearchResult{Query: "q1"})
	assert.Equal(t, "N/A", s.Knowledge())
	assert.Equal(t, "q1", s.Queries())
}

func TestStore_ResultsIsACopy(t *testing.T) {
	s := NewStore()
	s.Add(SearchResult{Query: "q1", Result: "r1"})

	out := s.Results()
	out[0].Result = "mutated"
	assert.Equal(t, "r1", s.Results()[0].Result)
}

func TestSearchResult_HasResult(t *testing.T) {
	assert.True(t, SearchResult{Query: "q", Result: "r"}.HasResult())
	assert.False(t, SearchResult{Query: "q"}.HasResult())
}
