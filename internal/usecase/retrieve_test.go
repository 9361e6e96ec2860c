package usecase

import (
	"math"
	"testing"

	"semdex/internal/adapter/store"
	"semdex/internal/domain"
)

func TestCosineSymmetricAndBounded(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-2, 0.5, 4}

	ab := Cosine(a, b)
	ba := Cosine(b, a)
	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("cosine not symmetric: %f vs %f", ab, ba)
	}
	if ab < -1-1e-9 || ab > 1+1e-9 {
		t.Errorf("cosine out of bounds: %f", ab)
	}
}

func TestCosineSelfSimilarity(t *testing.T) {
	a := []float32{0.3, -0.4, 0.5}
	if got := Cosine(a, a); math.Abs(got-1) > 1e-6 {
		t.Errorf("expected self-similarity 1, got %f", got)
	}
}

func TestCosineZeroVector(t *testing.T) {
	if got := Cosine([]float32{0, 0}, []float32{1, 1}); got != 0 {
		t.Errorf("expected 0 for zero vector, got %f", got)
	}
}

func TestCosineDimensionMismatch(t *testing.T) {
	if got := Cosine([]float32{1, 2}, []float32{1, 2, 3}); got != 0 {
		t.Errorf("expected 0 for dimension mismatch, got %f", got)
	}
}

func TestRerankBlend(t *testing.T) {
	r := NewReranker(0.7, 0.3)

	candidates := []domain.ScoredCandidate{
		{DocumentID: "1", Text: "apple language facts", Score: 0.5},
	}
	ranked := r.Rerank(candidates, "apple language")

	// overlap = 2/2 = 1.0, final = 0.7*0.5 + 0.3*1.0
	want := 0.7*0.5 + 0.3*1.0
	if math.Abs(ranked[0].Score-want) > 1e-9 {
		t.Errorf("expected blended score %f, got %f", want, ranked[0].Score)
	}
}

func TestRerankMonotonicInOverlap(t *testing.T) {
	r := NewReranker(0.7, 0.3)

	// Same similarity, increasing lexical overlap.
	candidates := []domain.ScoredCandidate{
		{DocumentID: "a", Text: "nothing shared here", Score: 0.4},
		{DocumentID: "b", Text: "apple mentioned once", Score: 0.4},
		{DocumentID: "c", Text: "apple language both", Score: 0.4},
	}
	ranked := r.Rerank(candidates, "apple language")

	if ranked[0].DocumentID != "c" || ranked[1].DocumentID != "b" || ranked[2].DocumentID != "a" {
		t.Errorf("expected order c, b, a; got %s, %s, %s",
			ranked[0].DocumentID, ranked[1].DocumentID, ranked[2].DocumentID)
	}
	if ranked[0].Score <= ranked[1].Score || ranked[1].Score <= ranked[2].Score {
		t.Error("increasing overlap must never decrease the final score")
	}
}

func TestRerankEmptyQueryOverlap(t *testing.T) {
	r := NewReranker(0.7, 0.3)

	candidates := []domain.ScoredCandidate{
		{DocumentID: "1", Text: "some text", Score: 0.5},
	}
	ranked := r.Rerank(candidates, "???")

	// A query with no words contributes zero overlap.
	if math.Abs(ranked[0].Score-0.35) > 1e-9 {
		t.Errorf("expected pure similarity component, got %f", ranked[0].Score)
	}
}

func TestRerankDeterministicTieBreak(t *testing.T) {
	r := NewReranker(0.7, 0.3)

	candidates := []domain.ScoredCandidate{
		{DocumentID: "b", Text: "same nothing", Score: 0.5},
		{DocumentID: "a", Text: "same nothing", Score: 0.5},
		{DocumentID: "a", Text: "other nothing", Score: 0.5},
	}

	for i := 0; i < 5; i++ {
		ranked := r.Rerank(candidates, "unrelated query")
		if ranked[0].DocumentID != "a" || ranked[0].Text != "other nothing" {
			t.Fatalf("tie-break not deterministic: first = %+v", ranked[0])
		}
		if ranked[1].DocumentID != "a" || ranked[2].DocumentID != "b" {
			t.Fatalf("tie-break not deterministic: %+v", ranked)
		}
	}
}

// fixedEmbedder returns canned vectors per text.
type fixedEmbedder struct {
	vectors map[string][]float32
}

func (e *fixedEmbedder) Embed(text string) ([]float32, error) {
	return e.vectors[text], nil
}

func (e *fixedEmbedder) Dimension() int    { return 2 }
func (e *fixedEmbedder) ModelName() string { return "fixed" }

func TestScoreUnscoreableQuery(t *testing.T) {
	docStore := store.NewDocumentStore()
	docStore.Append(domain.Document{
		ID:        "1",
		Processed: true,
		Chunks:    []domain.Chunk{{Text: "something", Embedding: []float32{1, 0}}},
	})

	e := NewRetrievalEngine(&fixedEmbedder{}, newMapCache(), docStore, NewReranker(0, 0))

	if got := e.Score("anything"); got != nil {
		t.Errorf("unscoreable query must yield empty results, got %v", got)
	}
	if got := e.Search("anything", 3); got != nil {
		t.Errorf("unscoreable query must yield empty search results, got %v", got)
	}
}

func TestScoreEmitsCandidatePerChunk(t *testing.T) {
	docStore := store.NewDocumentStore()
	docStore.Append(domain.Document{
		ID:        "1",
		Processed: true,
		Chunks: []domain.Chunk{
			{Text: "east", Embedding: []float32{1, 0}},
			{Text: "north", Embedding: []float32{0, 1}},
		},
	})
	docStore.Append(domain.Document{
		ID:        "2",
		Processed: true,
		Chunks:    []domain.Chunk{{Text: "northeast", Embedding: []float32{1, 1}}},
	})

	emb := &fixedEmbedder{vectors: map[string][]float32{"q": {1, 0}}}
	e := NewRetrievalEngine(emb, newMapCache(), docStore, NewReranker(0, 0))

	candidates := e.Score("q")
	if len(candidates) != 3 {
		t.Fatalf("expected one candidate per chunk, got %d", len(candidates))
	}

	// Sorted by raw cosine descending: east (1.0), northeast (~0.707), north (0).
	if candidates[0].Text != "east" || candidates[1].Text != "northeast" || candidates[2].Text != "north" {
		t.Errorf("unexpected raw order: %s, %s, %s",
			candidates[0].Text, candidates[1].Text, candidates[2].Text)
	}
}

func TestSearchTruncatesToLimit(t *testing.T) {
	docStore := store.NewDocumentStore()
	chunks := make([]domain.Chunk, 10)
	for i := range chunks {
		chunks[i] = domain.Chunk{Text: "chunk", Embedding: []float32{1, float32(i)}}
	}
	docStore.Append(domain.Document{ID: "1", Processed: true, Chunks: chunks})

	emb := &fixedEmbedder{vectors: map[string][]float32{"q": {1, 0}}}
	e := NewRetrievalEngine(emb, newMapCache(), docStore, NewReranker(0, 0))

	if got := e.Search("q", 4); len(got) != 4 {
		t.Errorf("expected 4 results, got %d", len(got))
	}
	if got := e.Search("q", 0); len(got) != DefaultResultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultResultLimit, len(got))
	}
}
