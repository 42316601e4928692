// Package prompt renders the instruction texts used by the search and
// verdict loops. Templates are deliberately plain: every function returns
// a ready-to-send prompt string so callers never touch template syntax.
package prompt

import (
	"strings"

	"github.com/MaggiR/mafc/internal/util"
)

const nextQueryTemplate = `You assist in verifying the following CLAIM by proposing web search queries.

CLAIM: {{.Claim}}

KNOWLEDGE gathered so far:
{{.Knowledge}}

QUERIES already issued:
{{.PastQueries}}

Propose the single most useful next {{.Engine}} search query to verify the CLAIM.
It must differ from all queries already issued. Wrap the query in a fenced code
block and output nothing else.`

// NextQuery asks the model for the next search query, conditioned on the
// claim, the accumulated knowledge and the previously issued queries.
func NextQuery(claim, knowledge, pastQueries, engine string) (string, error) {
	return util.RenderTemplate(nextQueryTemplate, map[string]any{
		"Claim":       claim,
		"Knowledge":   knowledge,
		"PastQueries": pastQueries,
		"Engine":      engine,
	})
}

// ExtractQuery asks the model to pull a plain search sentence out of its
// own verbose output after fence extraction failed.
func ExtractQuery(response string) string {
	return "Extract a simple sentence that I can use for a web search query from this string:\n" + response
}

// Mixer asks the model for a different query after the proposed one
// duplicated an already-issued query.
func Mixer(claim, staleQuery string) (string, error) {
	return util.RenderTemplate(`This is the CLAIM: '{{.Claim}}'. You have tried this QUERY: '{{.Query}}' but the search result was irrelevant to the claim. Change the QUERY to extract important knowledge about the CLAIM. Answer only with the new query: `,
		map[string]any{"Claim": claim, "Query": staleQuery})
}

const summarizeTemplate = `Summarize the following SEARCH RESULT in at most three sentences,
keeping only information relevant to the QUERY. Output the summary and nothing else.

QUERY: {{.Query}}

SEARCH RESULT:
{{.Result}}`

// Summarize asks the model to condense an overlong search result.
func Summarize(query, result string) (string, error) {
	return util.RenderTemplate(summarizeTemplate, map[string]any{"Query": query, "Result": result})
}

const sufficiencyInstruction = "Given the following INFORMATION, determine if it is enough to conclusively decide " +
	"whether the CLAIM is true or false with high certainty. If the INFORMATION is sufficient, " +
	"respond 'sufficient'. Otherwise, respond 'insufficient'. " +
	"If you are in doubt or need more information, respond 'insufficient'. " +
	"Respond with only one word."

// Sufficiency asks the model whether the accumulated knowledge warrants
// stopping the search loop.
func Sufficiency(claim, knowledge string) string {
	return sufficiencyInstruction + "\nINFORMATION:\n" + knowledge + "\nCLAIM: " + claim
}

const reasonTemplate = `Determine the CLAIM's veracity by reasoning over the KNOWLEDGE below.

CLAIM: {{.Claim}}

KNOWLEDGE:
{{.Knowledge}}

Explain your reasoning, then conclude with the final verdict in square
brackets. The verdict must be exactly one of: {{join ", " .Labels}}.
Example conclusion: "Therefore, the claim is [{{index .Labels 0}}]."`

// Reason builds the reasoning-mode verdict prompt: justification plus a
// bracketed label.
func Reason(claim, knowledge string, labels []string) (string, error) {
	return util.RenderTemplate(reasonTemplate, map[string]any{
		"Claim":     claim,
		"Knowledge": knowledge,
		"Labels":    labels,
	})
}

const judgeTemplate = `Read the following fact-checking DOCUMENT and judge the claim it records.

DOCUMENT:
{{.Document}}

Respond with the verdict only, wrapped in backticks. The verdict must be
exactly one of: {{join ", " .Labels}}.`

// Judge builds the judge-mode verdict prompt: a single label given the
// full document, no separate justification.
func Judge(document string, labels []string) (string, error) {
	return util.RenderTemplate(judgeTemplate, map[string]any{
		"Document": document,
		"Labels":   labels,
	})
}

// Adjust builds the corrective re-prompt used when no valid label could be
// extracted from a verdict response.
func Adjust(validLabels []string, response string) string {
	return "Respond with one word! From [" + strings.Join(validLabels, ", ") +
		"], select the most fitting for the following string:\n" + response
}

const decomposeTemplate = `Split the following TEXT into its atomic factual claims. Each claim must be
a standalone sentence that can be verified independently. Output one claim
per line and nothing else.

TEXT: {{.Content}}`

// Decompose asks the model to split a passage into independently checkable
// atomic claims.
func Decompose(content string) (string, error) {
	return util.RenderTemplate(decomposeTemplate, map[string]any{"Content": content})
}
