package domain

// Document is one ingested unit of free text. Chunks are populated by the
// ingestion pipeline; Processed is true only once every surviving chunk
// carries a non-empty embedding in source order.
type Document struct {
	ID        string
	Content   string
	Chunks    []Chunk
	Processed bool
}

// Chunk is a bounded slice of a document's text plus its embedding vector.
type Chunk struct {
	Text      string
	Embedding []float32
}

// ScoredCandidate is an ephemeral per-query scoring of one chunk. It is
// produced by retrieval, adjusted by reranking, and discarded.
type ScoredCandidate struct {
	DocumentID string
	Text       string
	Score      float64
}

// Stats summarizes the indexed corpus.
type Stats struct {
	TotalDocs   int
	TotalChunks int
	AvgChunkLen float64
}
