package chunker

import (
	"strings"
	"testing"
)

func TestChunkEmpty(t *testing.T) {
	c := NewWordChunker(200, 5)

	if chunks := c.Chunk(""); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty input, got %d", len(chunks))
	}
	if chunks := c.Chunk("   \n\t  "); len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace input, got %d", len(chunks))
	}
}

func TestChunkShortInput(t *testing.T) {
	c := NewWordChunker(200, 5)

	content := "  a short note about nothing much  "
	chunks := c.Chunk(content)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for short input, got %d", len(chunks))
	}
	if chunks[0] != "a short note about nothing much" {
		t.Errorf("unexpected chunk text: %q", chunks[0])
	}
}

func TestChunkDeterministic(t *testing.T) {
	c := NewWordChunker(40, 3)
	content := strings.Repeat("alpha beta gamma delta epsilon ", 10)

	first := c.Chunk(content)
	second := c.Chunk(content)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestChunkRoundTrip(t *testing.T) {
	c := NewWordChunker(30, 2)
	content := "one two three four five six seven eight nine ten eleven twelve thirteen fourteen"
	words := strings.Fields(content)

	chunks := c.Chunk(content)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Every source word must appear, in order, across the chunk sequence.
	// Overlap duplicates are allowed; gaps are not.
	var all []string
	for _, chunk := range chunks {
		all = append(all, strings.Fields(chunk)...)
	}

	i := 0
	for _, w := range all {
		if i < len(words) && w == words[i] {
			i++
		}
	}
	if i != len(words) {
		t.Errorf("reconstructed only %d of %d words in order", i, len(words))
	}
}

func TestChunkOverlap(t *testing.T) {
	c := NewWordChunker(30, 2)
	content := "one two three four five six seven eight nine ten eleven twelve"

	chunks := c.Chunk(content)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 0; i < len(chunks)-1; i++ {
		tail := strings.Fields(chunks[i])
		head := strings.Fields(chunks[i+1])
		if len(tail) < 2 || len(head) < 2 {
			continue
		}
		if tail[len(tail)-2] != head[0] || tail[len(tail)-1] != head[1] {
			t.Errorf("chunks %d and %d do not share a 2-word overlap: %q | %q",
				i, i+1, chunks[i], chunks[i+1])
		}
	}
}

func TestChunkProgressWithOversizedOverlap(t *testing.T) {
	// Overlap larger than a chunk's word count must still make progress.
	c := NewWordChunker(10, 50)
	content := "aaaaaaaaaa bbbbbbbbbb cccccccccc dddddddddd"

	chunks := c.Chunk(content)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for _, chunk := range chunks {
		if chunk == "" {
			t.Error("produced empty chunk")
		}
	}
}
