package port

// Embedder produces a fixed-dimension vector for a text unit.
type Embedder interface {
	// Embed returns the L2-normalized vector for the given text.
	// A nil vector with a nil error means the text is unscoreable and
	// must be skipped by the caller; it is not an exceptional condition.
	Embed(text string) ([]float32, error)

	// Dimension returns the embedding vector dimension. It is stable for
	// the lifetime of the embedder.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}

// WordVectorSource resolves single-word embeddings for the weighted-average
// fallback strategy. A nil vector means the word is unknown.
type WordVectorSource interface {
	WordVector(word string) []float32

	Dimension() int
}
