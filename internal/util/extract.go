package util

import (
	"regexp"
	"strings"
)

var (
	codeBlockRe = regexp.MustCompile("(?s)```(?:[a-zA-Z0-9_+-]*\\n)?(.*?)```")
	codeSpanRe  = regexp.MustCompile("`([^`\n]+)`")
	bracketsRe  = regexp.MustCompile(`\[([^\[\]]+)\]`)
	nonWordRe   = regexp.MustCompile(`[^\w\s]`)
)

// FirstCodeBlock returns the content of the first fenced code block in s,
// ignoring any language tag, or "" when none exists.
func FirstCodeBlock(s string) string {
	m := codeBlockRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// LastCodeSpan returns the content of the last inline backtick span in s,
// or "" when none exists.
func LastCodeSpan(s string) string {
	ms := codeSpanRe.FindAllStringSubmatch(s, -1)
	if len(ms) == 0 {
		return ""
	}
	return strings.TrimSpace(ms[len(ms)-1][1])
}

// FirstSquareBrackets returns the content of the first square-bracketed
// span in s, or "" when none exists.
func FirstSquareBrackets(s string) string {
	m := bracketsRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Normalize strips punctuation, trims surrounding whitespace and lowercases
// the token so it can be compared against canonical label values.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(nonWordRe.ReplaceAllString(s, "")))
}

// guardrailPrefixes are openings of moderation/safety refusals. The check
// is a prefix match on purpose: phrases like "I cannot find any evidence"
// in the middle of a substantive answer must not count as a refusal.
var guardrailPrefixes = []string{
	"i cannot",
	"i can't",
	"i'm sorry",
	"i am sorry",
	"i'm unable",
	"i am unable",
	"as an ai",
}

// IsGuardrailHit reports whether the response is a safety/policy refusal
// rather than a substantive answer.
func IsGuardrailHit(response string) bool {
	r := strings.ToLower(strings.TrimSpace(response))
	for _, p := range guardrailPrefixes {
		if strings.HasPrefix(r, p) {
			return true
		}
	}
	return false
}

// CleanQuery removes newlines, backticks and surrounding whitespace from a
// model-produced search query.
func CleanQuery(s string) string {
	s = strings.NewReplacer("\n", " ", "`", "", "´", "", `"`, "").Replace(s)
	return strings.TrimSpace(s)
}
