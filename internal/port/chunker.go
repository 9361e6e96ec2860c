package port

// Chunker splits raw text into overlapping retrieval units. Implementations
// are deterministic and side-effect free.
type Chunker interface {
	Chunk(text string) []string
}
