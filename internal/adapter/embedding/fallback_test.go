package embedding

import (
	"math"
	"testing"
)

// staticSource resolves word vectors from a fixed table.
type staticSource struct {
	vectors   map[string][]float32
	dimension int
}

func (s *staticSource) WordVector(word string) []float32 {
	return s.vectors[word]
}

func (s *staticSource) Dimension() int {
	return s.dimension
}

func newStaticSource(dim int, vectors map[string][]float32) *staticSource {
	return &staticSource{vectors: vectors, dimension: dim}
}

func TestFallbackSingleWord(t *testing.T) {
	source := newStaticSource(3, map[string][]float32{
		"apple": {1, 0, 0},
	})
	f, err := NewFallback(source)
	if err != nil {
		t.Fatal(err)
	}

	vec, err := f.Embed("apple")
	if err != nil {
		t.Fatal(err)
	}
	if vec == nil {
		t.Fatal("expected a vector for a known word")
	}
	if vec[0] == 0 || vec[1] != 0 || vec[2] != 0 {
		t.Errorf("unexpected vector: %v", vec)
	}
}

func TestFallbackWeighting(t *testing.T) {
	// "the" is a function/default word, "apple" a noun; the noun must
	// dominate the weighted average.
	source := newStaticSource(3, map[string][]float32{
		"the":   {0, 0, 1},
		"apple": {1, 0, 0},
	})
	f, err := NewFallback(source)
	if err != nil {
		t.Fatal(err)
	}

	vec, err := f.Embed("the apple")
	if err != nil {
		t.Fatal(err)
	}
	if vec == nil {
		t.Fatal("expected a vector")
	}
	if vec[0] <= vec[2] {
		t.Errorf("noun component (%f) should outweigh article component (%f)", vec[0], vec[2])
	}
}

func TestFallbackStemResolution(t *testing.T) {
	source := newStaticSource(2, map[string][]float32{
		"run": {1, 0},
	})
	f, err := NewFallback(source)
	if err != nil {
		t.Fatal(err)
	}

	vec, err := f.Embed("running")
	if err != nil {
		t.Fatal(err)
	}
	if vec == nil {
		t.Fatal("expected 'running' to resolve via its stem")
	}
	if vec[0] == 0 {
		t.Errorf("unexpected vector: %v", vec)
	}
}

func TestFallbackNoResolvableWords(t *testing.T) {
	f, err := NewFallback(newStaticSource(3, nil))
	if err != nil {
		t.Fatal(err)
	}

	vec, err := f.Embed("completely unknown words")
	if err != nil {
		t.Fatal(err)
	}
	if vec != nil {
		t.Errorf("expected no embedding, got %v", vec)
	}
}

func TestFallbackEmptyText(t *testing.T) {
	f, err := NewFallback(newStaticSource(3, nil))
	if err != nil {
		t.Fatal(err)
	}

	vec, err := f.Embed("   ")
	if err != nil {
		t.Fatal(err)
	}
	if vec != nil {
		t.Errorf("expected no embedding for blank text, got %v", vec)
	}
}

func TestFallbackRequiresSource(t *testing.T) {
	if _, err := NewFallback(nil); err == nil {
		t.Error("expected error for nil word vector source")
	}
}

func TestTagWeights(t *testing.T) {
	cases := []struct {
		tag  string
		want float64
	}{
		{"NN", weightContent},
		{"NNS", weightContent},
		{"VBD", weightContent},
		{"JJ", weightModifier},
		{"RB", weightModifier},
		{"PRP", weightFunction},
		{"IN", weightFunction},
		{"CC", weightFunction},
		{"DT", weightDefault},
		{"CD", weightDefault},
	}

	for _, c := range cases {
		if got := tagWeight(c.tag); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("tagWeight(%q) = %f, want %f", c.tag, got, c.want)
		}
	}
}
