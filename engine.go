// Package semdex is an in-process retrieval engine: it chunks free-text
// documents, embeds the chunks through a two-tier content-addressed cache,
// answers queries with a cosine-plus-lexical ranking, and assembles the
// context handed to an external generation model.
package semdex

import (
	"fmt"
	"path/filepath"

	"semdex/config"
	"semdex/internal/adapter/cache"
	"semdex/internal/adapter/chunker"
	"semdex/internal/adapter/embedding"
	"semdex/internal/adapter/generation"
	"semdex/internal/adapter/store"
	"semdex/internal/domain"
	"semdex/internal/port"
	"semdex/internal/usecase"
)

// Document is an {id, content} ingestion pair. Ids are caller-assigned;
// re-adding an id overwrites the previous document (last write wins).
type Document struct {
	ID      string
	Content string
}

// Result is one ranked search hit.
type Result struct {
	DocumentID string
	Text       string
	Score      float64
}

// Stats summarizes the engine's state.
type Stats struct {
	Documents    int
	Chunks       int
	CacheEntries int
}

// Engine owns the ingestion and query flows. All methods are safe for
// concurrent use; the same document must not be ingested by two concurrent
// calls.
type Engine struct {
	cfg       *config.Config
	cache     *cache.TwoTier
	docs      *store.DocumentStore
	pipeline  *usecase.IngestionPipeline
	retrieval *usecase.RetrievalEngine
	assembler *usecase.ContextAssembler
	generator port.Generator
}

type options struct {
	embedder  port.Embedder
	generator port.Generator
}

// Option customizes engine construction.
type Option func(*options)

// WithEmbedder replaces the configured embedding provider, for offline use
// and tests.
func WithEmbedder(e port.Embedder) Option {
	return func(o *options) { o.embedder = e }
}

// WithGenerator replaces the configured generation model.
func WithGenerator(g port.Generator) Option {
	return func(o *options) { o.generator = g }
}

// New constructs an engine from the configuration. It fails fast when no
// embedding strategy can be initialized: a core without any embedding
// source must refuse to start.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	embedder := o.embedder
	if embedder == nil {
		var err error
		embedder, err = buildEmbedder(cfg.Embedding)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize embedding provider: %w", err)
		}
	}

	disk, err := buildDiskStore(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	embCache := cache.NewTwoTier(cache.NewMemory(cfg.Cache.MaxEntries, cfg.Cache.MaxBytes), disk)

	generator := o.generator
	if generator == nil && cfg.Generation.Provider == "openai" {
		generator, err = generation.NewOpenAIGenerator(
			cfg.Generation.APIKeyEnv,
			cfg.Generation.Model,
			cfg.Generation.BaseURL,
			cfg.Generation.MaxTokens,
			cfg.Generation.Temperature,
		)
		if err != nil {
			embCache.Close()
			return nil, fmt.Errorf("failed to initialize generator: %w", err)
		}
	}

	docs := store.NewDocumentStore()
	chk := chunker.NewWordChunker(cfg.Chunker.ChunkSize, cfg.Chunker.OverlapWords)
	reranker := usecase.NewReranker(cfg.Retrieve.SimilarityWeight, cfg.Retrieve.LexicalWeight)

	return &Engine{
		cfg:       cfg,
		cache:     embCache,
		docs:      docs,
		pipeline:  usecase.NewIngestionPipeline(chk, embedder, embCache, docs, cfg.Ingest.MaxParallelDocs),
		retrieval: usecase.NewRetrievalEngine(embedder, embCache, docs, reranker),
		assembler: usecase.NewContextAssembler(),
		generator: generator,
	}, nil
}

// buildEmbedder assembles the strategy chain for the configured provider.
func buildEmbedder(cfg config.EmbeddingConfig) (port.Embedder, error) {
	switch cfg.Provider {
	case "openai":
		remote, err := embedding.NewRemote(cfg.APIKeyEnv, cfg.Model, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		fallback, err := embedding.NewFallback(remote)
		if err != nil {
			return nil, err
		}
		return embedding.NewChain(remote, fallback)
	case "ollama":
		remote := embedding.NewOllamaRemote(cfg.Model, cfg.BaseURL)
		fallback, err := embedding.NewFallback(remote)
		if err != nil {
			return nil, err
		}
		return embedding.NewChain(remote, fallback)
	case "hashing", "":
		return embedding.NewChain(embedding.NewHashing(cfg.Dimension))
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", cfg.Provider)
	}
}

// buildDiskStore opens the configured persistent cache tier.
func buildDiskStore(cfg config.CacheConfig) (cache.DiskStore, error) {
	switch cfg.Backend {
	case "bolt":
		return cache.NewBoltStore(filepath.Join(cfg.Dir, "cache.db"))
	case "file", "":
		return cache.NewFileStore(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Backend)
	}
}

// AddDocument ingests one document, blocking until it is processed and
// published. Run it in a goroutine for fire-and-forget ingestion.
func (e *Engine) AddDocument(doc Document) {
	e.pipeline.Ingest(domain.Document{ID: doc.ID, Content: doc.Content})
}

// AddDocuments ingests a batch with bounded document-level parallelism.
func (e *Engine) AddDocuments(docs []Document) {
	batch := make([]domain.Document, len(docs))
	for i, d := range docs {
		batch[i] = domain.Document{ID: d.ID, Content: d.Content}
	}
	e.pipeline.IngestAll(batch)
}

// Search returns the top-ranked chunks for the query. A non-positive limit
// falls back to the configured top-k. An unscoreable query yields an empty
// list, not an error.
func (e *Engine) Search(query string, limit int) []Result {
	if limit <= 0 {
		limit = e.cfg.Retrieve.TopK
	}

	ranked := e.retrieval.Search(query, limit)
	results := make([]Result, len(ranked))
	for i, c := range ranked {
		results[i] = Result{DocumentID: c.DocumentID, Text: c.Text, Score: c.Score}
	}
	return results
}

// GenerateResponse retrieves context for the query and asks the generation
// model to answer from it. A generation failure propagates as the query's
// overall failure.
func (e *Engine) GenerateResponse(query string) (string, error) {
	if e.generator == nil {
		return "", fmt.Errorf("no generation model configured")
	}

	ranked := e.retrieval.Search(query, e.cfg.Retrieve.TopK)
	prompt := e.assembler.Assemble(ranked, query)

	answer, err := e.generator.Generate(prompt)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	return answer, nil
}

// ClearCache empties both embedding-cache tiers. Stored documents and their
// chunk embeddings are unaffected; cleared entries are recomputed on demand.
func (e *Engine) ClearCache() error {
	return e.cache.Clear()
}

// Stats reports document, chunk, and memory-tier cache entry counts.
func (e *Engine) Stats() Stats {
	s := e.docs.Stats()
	return Stats{
		Documents:    s.TotalDocs,
		Chunks:       s.TotalChunks,
		CacheEntries: e.cache.Len(),
	}
}

// Close flushes pending cache writes and releases the persistent tier.
func (e *Engine) Close() error {
	return e.cache.Close()
}
