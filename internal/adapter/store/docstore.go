// Package store holds ingested documents behind a multiple-reader /
// single-writer discipline.
package store

import (
	"sync"

	"semdex/internal/domain"
)

// DocumentStore is an unordered collection of documents keyed by id.
// Appends are last-write-wins; readers always observe a consistent set with
// no partially appended document visible.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]domain.Document
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]domain.Document),
	}
}

// Append publishes a complete document, replacing any previous document
// with the same id.
func (s *DocumentStore) Append(doc domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
}

// Get returns the document with the given id.
func (s *DocumentStore) Get(id string) (domain.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// Snapshot returns a read-only view of all currently processed documents.
// Unprocessed documents are excluded from query-time iteration.
func (s *DocumentStore) Snapshot() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		if doc.Processed {
			docs = append(docs, doc)
		}
	}
	return docs
}

// Stats summarizes the processed corpus.
func (s *DocumentStore) Stats() domain.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.Stats
	var totalLen int
	for _, doc := range s.docs {
		if !doc.Processed {
			continue
		}
		stats.TotalDocs++
		stats.TotalChunks += len(doc.Chunks)
		for _, chunk := range doc.Chunks {
			totalLen += len(chunk.Text)
		}
	}
	if stats.TotalChunks > 0 {
		stats.AvgChunkLen = float64(totalLen) / float64(stats.TotalChunks)
	}
	return stats
}

// Len returns the number of stored documents, processed or not.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
