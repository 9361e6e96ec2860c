// Package chunker splits raw text into overlapping retrieval units.
package chunker

import "strings"

// DefaultChunkSize is the character threshold at which a chunk is closed.
const DefaultChunkSize = 200

// DefaultOverlapWords is the number of trailing words carried into the next
// chunk. It is an explicit knob, never derived from a character budget.
const DefaultOverlapWords = 5

// WordChunker accumulates whitespace-delimited words into chunks until a
// character threshold is reached, starting each following chunk with a short
// overlap window of the previous chunk's tail.
type WordChunker struct {
	chunkSize    int
	overlapWords int
}

// NewWordChunker creates a WordChunker. Non-positive arguments fall back to
// the defaults.
func NewWordChunker(chunkSize, overlapWords int) *WordChunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlapWords < 0 {
		overlapWords = DefaultOverlapWords
	}
	return &WordChunker{
		chunkSize:    chunkSize,
		overlapWords: overlapWords,
	}
}

// Chunk splits text into ordered chunks. Empty input yields no chunks; input
// shorter than the threshold yields exactly one chunk equal to the trimmed
// text. Consecutive chunks share an overlapWords-word tail/head.
func (c *WordChunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	start := 0

	for start < len(words) {
		end := start
		length := 0

		for end < len(words) && length < c.chunkSize {
			if length > 0 {
				length++ // separating space
			}
			length += len(words[end])
			end++
		}

		chunks = append(chunks, strings.Join(words[start:end], " "))

		if end == len(words) {
			break
		}

		next := end - c.overlapWords
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks
}
