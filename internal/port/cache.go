package port

// EmbeddingCache is a content-addressed store mapping text to its embedding
// vector. Texts that normalize to the same form share one entry.
type EmbeddingCache interface {
	// Get returns the cached vector for text, if present.
	Get(text string) ([]float32, bool)

	// Put stores the vector for text. Persistence is best-effort and
	// asynchronous; an entry not yet durable is recomputable by design.
	Put(text string, vector []float32)

	// Clear empties the cache, leaving a valid zero-entry store behind.
	Clear() error
}
