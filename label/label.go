// Package label defines the closed set of verdict categories a fact check
// can produce, together with the alias table used to map normalized model
// output back onto canonical labels.
package label

import "strings"

// Label is one of the closed verdict categories. Canonical values are the
// lowercase strings the model is asked to emit.
type Label string

const (
	// Supported means the gathered evidence backs the claim.
	Supported Label = "supported"
	// Refuted means the gathered evidence contradicts the claim.
	Refuted Label = "refuted"
	// NotEnoughInfo means the evidence is insufficient to decide.
	NotEnoughInfo Label = "not enough information"
	// RefusedToAnswer is the sentinel category for guardrail refusals and
	// exhausted retry budgets. It is never offered to the model as a choice.
	RefusedToAnswer Label = "refused to answer"
)

// String returns the canonical value.
func (l Label) String() string { return string(l) }

// Alias pairs a canonical label with the normalized tokens that count as a
// match for it. Table order is the tie-break for substring matching, so it
// is part of the contract, not an implementation detail.
type Alias struct {
	Canonical Label
	Accepted  []string
}

// Aliases is the ordered matching table. Earlier entries win.
var Aliases = []Alias{
	{Supported, []string{"supported", "supports"}},
	{Refuted, []string{"refuted", "refutes"}},
	{NotEnoughInfo, []string{"not enough information", "not enough info", "nei", "inconclusive"}},
	{RefusedToAnswer, []string{"refused to answer", "refused"}},
}

// Candidates returns the default ordered set of labels a verdict may pick
// from. RefusedToAnswer is excluded: it is a fallback, not a choice.
func Candidates() []Label {
	return []Label{Supported, Refuted, NotEnoughInfo}
}

// Values renders labels to their canonical strings, e.g. for prompt
// interpolation.
func Values(labels []Label) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.String()
	}
	return out
}

// Parse performs an exact lookup of a normalized token against all
// canonical label values, including the refusal sentinel.
func Parse(token string) (Label, bool) {
	for _, a := range Aliases {
		if token == string(a.Canonical) {
			return a.Canonical, true
		}
	}
	return "", false
}

// Match resolves a normalized token against the candidate labels. It first
// tries an exact value lookup, then checks whether any accepted alias of a
// candidate occurs as a substring of the token, in table order.
func Match(token string, candidates []Label) (Label, bool) {
	if l, ok := Parse(token); ok && contains(candidates, l) {
		return l, true
	}
	for _, a := range Aliases {
		if !contains(candidates, a.Canonical) {
			continue
		}
		for _, accepted := range a.Accepted {
			if strings.Contains(token, accepted) {
				return a.Canonical, true
			}
		}
	}
	return "", false
}

func contains(labels []Label, l Label) bool {
	for _, c := range labels {
		if c == l {
			return true
		}
	}
	return false
}
