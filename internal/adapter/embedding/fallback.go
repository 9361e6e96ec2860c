package embedding

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball"

	"semdex/internal/adapter/analyzer"
	"semdex/internal/port"
)

// Part-of-speech weights for the averaged fallback vector. Content words
// dominate; function words barely contribute.
const (
	weightContent  = 2.0 // nouns, verbs
	weightModifier = 1.5 // adjectives, adverbs
	weightFunction = 0.5 // pronouns, prepositions, conjunctions
	weightDefault  = 1.0
)

// Fallback builds an embedding as the part-of-speech-weighted average of
// per-word vectors. It is used when the direct model call yields no usable
// vector. Unknown words are retried with their stem before being skipped.
type Fallback struct {
	words port.WordVectorSource
}

// NewFallback creates a Fallback over the given word vector source.
func NewFallback(words port.WordVectorSource) (*Fallback, error) {
	if words == nil {
		return nil, fmt.Errorf("fallback embedder requires a word vector source")
	}
	return &Fallback{words: words}, nil
}

// Embed tags each word of the normalized text, resolves per-word vectors,
// and returns their weight-normalized average. If no word resolves, the
// text is unscoreable and a nil vector is returned.
func (f *Fallback) Embed(text string) ([]float32, error) {
	text = analyzer.Normalize(text)
	if text == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("part-of-speech tagging failed: %w", err)
	}

	dim := f.words.Dimension()
	sum := make([]float64, dim)
	var totalWeight float64

	for _, tok := range doc.Tokens() {
		word := strings.ToLower(tok.Text)
		vec := f.resolve(word)
		if vec == nil || len(vec) != dim {
			continue
		}

		w := tagWeight(tok.Tag)
		for i, v := range vec {
			sum[i] += float64(v) * w
		}
		totalWeight += w
	}

	if totalWeight == 0 {
		return nil, nil
	}

	out := make([]float32, dim)
	for i := range sum {
		out[i] = float32(sum[i] / totalWeight)
	}
	return out, nil
}

// resolve looks the word up as-is, then under its English stem.
func (f *Fallback) resolve(word string) []float32 {
	if vec := f.words.WordVector(word); vec != nil {
		return vec
	}
	stem, err := snowball.Stem(word, "english", true)
	if err != nil || stem == word {
		return nil
	}
	return f.words.WordVector(stem)
}

// tagWeight maps a Penn Treebank tag to its averaging weight.
func tagWeight(tag string) float64 {
	switch {
	case strings.HasPrefix(tag, "NN"), strings.HasPrefix(tag, "VB"):
		return weightContent
	case strings.HasPrefix(tag, "JJ"), strings.HasPrefix(tag, "RB"):
		return weightModifier
	}
	switch tag {
	case "PRP", "PRP$", "WP", "WP$", "IN", "CC", "TO":
		return weightFunction
	}
	return weightDefault
}

// Dimension returns the embedding vector dimension.
func (f *Fallback) Dimension() int {
	return f.words.Dimension()
}

// ModelName returns the name of the embedding model.
func (f *Fallback) ModelName() string {
	return "pos-weighted-average"
}
