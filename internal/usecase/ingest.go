// Package usecase orchestrates the core flows: ingestion (chunk, embed
// through the cache, publish), retrieval (score, rerank), and context
// assembly for the generation step.
package usecase

import (
	"sync"

	"semdex/internal/adapter/store"
	"semdex/internal/domain"
	"semdex/internal/port"
)

// DefaultMaxParallelDocs caps how many documents a batch processes at once.
const DefaultMaxParallelDocs = 4

// IngestionPipeline chunks a document, resolves each chunk's embedding
// through the cache, and publishes the processed document into the store.
// Chunk embeddings inside one document are computed with unbounded fan-out;
// batch ingestion bounds document-level parallelism with an admission gate.
type IngestionPipeline struct {
	chunker         port.Chunker
	embedder        port.Embedder
	cache           port.EmbeddingCache
	store           *store.DocumentStore
	maxParallelDocs int
}

// NewIngestionPipeline creates a pipeline. A non-positive maxParallelDocs
// falls back to the default.
func NewIngestionPipeline(
	chunker port.Chunker,
	embedder port.Embedder,
	cache port.EmbeddingCache,
	store *store.DocumentStore,
	maxParallelDocs int,
) *IngestionPipeline {
	if maxParallelDocs <= 0 {
		maxParallelDocs = DefaultMaxParallelDocs
	}
	return &IngestionPipeline{
		chunker:         chunker,
		embedder:        embedder,
		cache:           cache,
		store:           store,
		maxParallelDocs: maxParallelDocs,
	}
}

// Ingest processes one document and publishes it. Re-ingesting the same id
// overwrites its chunk list. A chunk whose embedding cannot be computed is
// omitted; it never fails the document as a whole. The final chunk sequence
// always preserves source order regardless of completion order.
func (p *IngestionPipeline) Ingest(doc domain.Document) domain.Document {
	texts := p.chunker.Chunk(doc.Content)

	// One slot per source chunk: completion order cannot reorder the
	// sequence, failed chunks leave nil holes that are dropped below.
	slots := make([]*domain.Chunk, len(texts))
	var wg sync.WaitGroup

	for i, text := range texts {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			vector := p.embed(text)
			if vector == nil {
				return
			}
			slots[i] = &domain.Chunk{Text: text, Embedding: vector}
		}(i, text)
	}
	wg.Wait()

	chunks := make([]domain.Chunk, 0, len(slots))
	for _, slot := range slots {
		if slot != nil {
			chunks = append(chunks, *slot)
		}
	}

	doc.Chunks = chunks
	doc.Processed = true
	p.store.Append(doc)

	return doc
}

// IngestAll processes a batch with at most maxParallelDocs documents in
// flight. Per-document chunk fan-out stays uncapped.
func (p *IngestionPipeline) IngestAll(docs []domain.Document) []domain.Document {
	gate := make(chan struct{}, p.maxParallelDocs)
	out := make([]domain.Document, len(docs))
	var wg sync.WaitGroup

	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc domain.Document) {
			defer wg.Done()
			gate <- struct{}{}
			defer func() { <-gate }()
			out[i] = p.Ingest(doc)
		}(i, doc)
	}
	wg.Wait()

	return out
}

// embed resolves a chunk vector through the cache, computing and writing
// back on a miss. Nil means the chunk is unscoreable.
func (p *IngestionPipeline) embed(text string) []float32 {
	if vector, ok := p.cache.Get(text); ok {
		return vector
	}

	vector, err := p.embedder.Embed(text)
	if err != nil || vector == nil {
		return nil
	}

	p.cache.Put(text, vector)
	return vector
}
