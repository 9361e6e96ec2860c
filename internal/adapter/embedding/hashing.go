package embedding

import (
	"hash/fnv"

	"semdex/internal/adapter/analyzer"
)

// DefaultHashingDimension is the vector size of the hashing embedder.
const DefaultHashingDimension = 512

// Hashing is a deterministic offline embedder: a feature-hashed bag of
// words. Texts sharing words land in shared buckets, so cosine similarity
// tracks lexical overlap. It needs no model, which makes it the last-resort
// strategy and the word source for fully offline setups.
type Hashing struct {
	dimension int
}

// NewHashing creates a Hashing embedder. A non-positive dimension falls back
// to the default.
func NewHashing(dimension int) *Hashing {
	if dimension <= 0 {
		dimension = DefaultHashingDimension
	}
	return &Hashing{dimension: dimension}
}

// Embed accumulates one bucket per word occurrence. Text with no words is
// unscoreable.
func (e *Hashing) Embed(text string) ([]float32, error) {
	words := analyzer.Words(text)
	if len(words) == 0 {
		return nil, nil
	}

	vec := make([]float32, e.dimension)
	for _, w := range words {
		vec[e.bucket(w)]++
	}
	return vec, nil
}

// WordVector returns the one-hot hashed vector for a single word, making
// Hashing usable as a WordVectorSource for the fallback strategy.
func (e *Hashing) WordVector(word string) []float32 {
	words := analyzer.Words(word)
	if len(words) == 0 {
		return nil
	}

	vec := make([]float32, e.dimension)
	vec[e.bucket(words[0])] = 1
	return vec
}

func (e *Hashing) bucket(word string) int {
	h := fnv.New32a()
	h.Write([]byte(word))
	return int(h.Sum32() % uint32(e.dimension))
}

// Dimension returns the embedding vector dimension.
func (e *Hashing) Dimension() int {
	return e.dimension
}

// ModelName returns the name of the embedding model.
func (e *Hashing) ModelName() string {
	return "hashing"
}
