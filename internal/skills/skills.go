// Package skills canonicalizes free-text skill names so that distinct
// spellings of the same skill compare equal during matching and scoring.
package skills

import (
	"regexp"
	"strings"
)

var nonTokenChars = regexp.MustCompile(`[^a-z0-9+#\s]`)
var whitespaceRuns = regexp.MustCompile(`\s+`)

// displayOverrides maps normalized words to their conventional casing.
var displayOverrides = map[string]string{
	"sql":     "SQL",
	"mongodb": "MongoDB",
	"api":     "API",
	"dsa":     "DSA",
	"aws":     "AWS",
	"css":     "CSS",
}

// Normalize converts a raw skill string to its canonical token: lowercase,
// with every character outside [a-z0-9+#\s] replaced by a space, whitespace
// runs collapsed, and the result trimmed. The token is the sole equality key
// for skill matching; no synonym resolution happens here.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = nonTokenChars.ReplaceAllString(s, " ")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// TitleCase produces the display form of a skill: each word is looked up in
// the override table, otherwise its first letter is upper-cased.
func TitleCase(raw string) string {
	words := strings.Fields(strings.ToLower(raw))
	for i, w := range words {
		if display, ok := displayOverrides[w]; ok {
			words[i] = display
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Dedupe removes duplicate skills keyed by normalized token, preserving
// first-seen order and emitting display-cased forms. Blank entries are
// dropped.
func Dedupe(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, raw := range list {
		token := Normalize(raw)
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, TitleCase(raw))
	}
	return out
}

// TokenSet builds a lookup set of normalized tokens from display strings.
func TokenSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, s := range list {
		token := Normalize(s)
		if token == "" {
			continue
		}
		set[token] = struct{}{}
	}
	return set
}
