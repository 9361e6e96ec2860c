package usecase

import (
	"math"
	"sort"

	"semdex/internal/adapter/analyzer"
	"semdex/internal/adapter/store"
	"semdex/internal/domain"
	"semdex/internal/port"
)

// Default weights for the fixed linear blend of cosine similarity and
// lexical overlap.
const (
	DefaultSimilarityWeight = 0.7
	DefaultLexicalWeight    = 0.3
)

// DefaultResultLimit is the number of results returned when the caller asks
// for none in particular.
const DefaultResultLimit = 3

// RetrievalEngine scores every chunk of every processed document against a
// query vector and hands the candidates to the reranker.
type RetrievalEngine struct {
	embedder port.Embedder
	cache    port.EmbeddingCache
	store    *store.DocumentStore
	reranker *Reranker
}

// NewRetrievalEngine creates a retrieval engine.
func NewRetrievalEngine(
	embedder port.Embedder,
	cache port.EmbeddingCache,
	store *store.DocumentStore,
	reranker *Reranker,
) *RetrievalEngine {
	return &RetrievalEngine{
		embedder: embedder,
		cache:    cache,
		store:    store,
		reranker: reranker,
	}
}

// Search scores, reranks, and truncates to limit. A non-positive limit
// falls back to the default.
func (e *RetrievalEngine) Search(query string, limit int) []domain.ScoredCandidate {
	if limit <= 0 {
		limit = DefaultResultLimit
	}

	candidates := e.Score(query)
	if len(candidates) == 0 {
		return nil
	}

	ranked := e.reranker.Rerank(candidates, query)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Score embeds the query and emits one cosine-scored candidate per chunk of
// every processed document, sorted by raw similarity. An unscoreable query
// yields an empty result set, not an error. No early pruning.
func (e *RetrievalEngine) Score(query string) []domain.ScoredCandidate {
	queryVec := e.embedQuery(query)
	if queryVec == nil {
		return nil
	}

	var candidates []domain.ScoredCandidate
	for _, doc := range e.store.Snapshot() {
		for _, chunk := range doc.Chunks {
			candidates = append(candidates, domain.ScoredCandidate{
				DocumentID: doc.ID,
				Text:       chunk.Text,
				Score:      Cosine(queryVec, chunk.Embedding),
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// embedQuery resolves the query vector through the same cache as ingestion.
func (e *RetrievalEngine) embedQuery(query string) []float32 {
	if vector, ok := e.cache.Get(query); ok {
		return vector
	}

	vector, err := e.embedder.Embed(query)
	if err != nil || vector == nil {
		return nil
	}

	e.cache.Put(query, vector)
	return vector
}

// Cosine returns the cosine similarity of two vectors: dot(a,b)/(|a|*|b|).
// A zero-magnitude vector or a dimension mismatch yields 0, not an error,
// since either can arise from model changes without cache invalidation.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Reranker blends cosine similarity with lexical overlap into the final
// order: score = similarityWeight*cosine + lexicalWeight*overlap. The blend
// is a configuration constant, not learned.
type Reranker struct {
	similarityWeight float64
	lexicalWeight    float64
}

// NewReranker creates a Reranker. Zero weights fall back to the defaults.
func NewReranker(similarityWeight, lexicalWeight float64) *Reranker {
	if similarityWeight == 0 && lexicalWeight == 0 {
		similarityWeight = DefaultSimilarityWeight
		lexicalWeight = DefaultLexicalWeight
	}
	return &Reranker{
		similarityWeight: similarityWeight,
		lexicalWeight:    lexicalWeight,
	}
}

// Rerank adjusts each candidate's score and sorts descending. Ties are
// broken deterministically by document id, then chunk text.
func (r *Reranker) Rerank(candidates []domain.ScoredCandidate, query string) []domain.ScoredCandidate {
	queryWords := analyzer.WordSet(query)

	ranked := make([]domain.ScoredCandidate, len(candidates))
	for i, c := range candidates {
		overlap := lexicalOverlap(queryWords, c.Text)
		c.Score = r.similarityWeight*c.Score + r.lexicalWeight*overlap
		ranked[i] = c
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].DocumentID != ranked[j].DocumentID {
			return ranked[i].DocumentID < ranked[j].DocumentID
		}
		return ranked[i].Text < ranked[j].Text
	})
	return ranked
}

// lexicalOverlap returns the fraction of query words present in the text,
// 0 when the query has no words.
func lexicalOverlap(queryWords map[string]struct{}, text string) float64 {
	if len(queryWords) == 0 {
		return 0
	}

	textWords := analyzer.WordSet(text)
	matched := 0
	for w := range queryWords {
		if _, ok := textWords[w]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(queryWords))
}
