// Package analyzer provides the text normalization shared by cache keying,
// the fallback embedder, and lexical reranking.
package analyzer

import (
	"strings"
	"unicode"
)

// Normalize collapses runs of whitespace to single spaces and trims the ends.
// Cache keys are derived from the normalized form, so texts differing only in
// whitespace share one cache entry.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Words splits text into lowercased words on unicode letter/digit boundaries.
func Words(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(unicode.ToLower(r))
		} else if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

// WordSet returns the lowercased word set of text.
func WordSet(text string) map[string]struct{} {
	words := Words(text)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
