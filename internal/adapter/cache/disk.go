package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DiskStore is the persistent cache tier. Writes are exclusive, reads
// concurrent; Clear leaves a valid zero-entry store behind.
type DiskStore interface {
	Read(key string) ([]float32, bool)
	Write(key string, vector []float32) error
	Clear() error
	Close() error
}

// FileStore keeps one file per cache key inside a dedicated directory:
// the filename is the hex-encoded content hash, the content a JSON numeric
// array. There is no header or version field; a format change requires
// clearing the whole cache.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore creates the cache directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory not specified")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Read loads the vector stored under key. Unreadable or corrupted entries
// count as absent.
func (s *FileStore) Read(key string) ([]float32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if err != nil {
		return nil, false
	}

	var vector []float32
	if err := json.Unmarshal(data, &vector); err != nil {
		return nil, false
	}
	return vector, true
}

// Write stores the vector under key, replacing any previous entry.
func (s *FileStore) Write(key string, vector []float32) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("failed to encode vector: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Clear removes the cache directory and recreates it empty.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to remove cache directory: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to recreate cache directory: %w", err)
	}
	return nil
}

// Close is a no-op for the file-backed store.
func (s *FileStore) Close() error {
	return nil
}

// Len counts the stored entries, for diagnostics.
func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0
	}
	return len(entries)
}
