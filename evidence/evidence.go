// Package evidence holds the (query, result) records accumulated during a
// search session and the helpers needed for duplicate detection and for
// building the knowledge string fed back into prompts.
package evidence

import (
	"fmt"
	"strings"
)

// none is substituted when a joined view would otherwise be empty, so
// prompts never interpolate an empty section.
const none = "N/A"

// SearchResult is one executed search. Result is empty when the lookup
// turned out duplicate or irrelevant; the query is still retained so it
// stays blocked for future steps.
type SearchResult struct {
	Query  string
	Result string
}

// HasResult reports whether the record carries usable result text.
func (r SearchResult) HasResult() bool { return r.Result != "" }

func (r SearchResult) String() string {
	return fmt.Sprintf("SearchResult(query=%q result=%q)", r.Query, r.Result)
}

// Store is the ordered evidence collected by one search session. Insertion
// order is discovery order. A Store grows monotonically while the session
// runs and is read-only afterwards; it is owned by the session that created
// it and must not be shared across sessions.
type Store struct {
	results []SearchResult
}

// NewStore creates an empty evidence store.
func NewStore() *Store { return &Store{} }

// Add appends a record unless its query is already present. It returns
// false when the record was rejected, preserving the invariant that no two
// entries share a query string.
func (s *Store) Add(r SearchResult) bool {
	if s.HasQuery(r.Query) {
		return false
	}
	s.results = append(s.results, r)
	return true
}

// Len returns the number of stored records.
func (s *Store) Len() int { return len(s.results) }

// Results returns a copy of the stored records in discovery order.
func (s *Store) Results() []SearchResult {
	out := make([]SearchResult, len(s.results))
	copy(out, s.results)
	return out
}

// HasQuery reports whether the exact query string was already issued.
func (s *Store) HasQuery(query string) bool {
	for _, r := range s.results {
		if r.Query == query {
			return true
		}
	}
	return false
}

// HasResult reports whether the exact result text was already stored.
// Matching is on full text, not source URL.
func (s *Store) HasResult(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range s.results {
		if r.Result == text {
			return true
		}
	}
	return false
}

// Queries joins all issued queries with newlines, or "N/A" when none exist.
func (s *Store) Queries() string {
	if len(s.results) == 0 {
		return none
	}
	parts := make([]string, 0, len(s.results))
	for _, r := range s.results {
		parts = append(parts, r.Query)
	}
	return strings.Join(parts, "\n")
}

// Knowledge joins all present result texts with newlines, or "N/A" when no
// usable evidence exists yet.
func (s *Store) Knowledge() string {
	var parts []string
	for _, r := range s.results {
		if r.HasResult() {
			parts = append(parts, r.Result)
		}
	}
	if len(parts) == 0 {
		return none
	}
	return strings.Join(parts, "\n")
}
