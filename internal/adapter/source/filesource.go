// Package source loads documents from external collaborators. The file
// source turns a directory of extracted text files into {id, content}
// ingestion pairs, with doublestar include/exclude globs.
package source

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"semdex/internal/domain"
)

// FileSource walks a directory tree and yields one document per matching
// file; the document id is the slash-separated path relative to the root.
type FileSource struct {
	root     string
	includes []string
	excludes []string
}

// NewFileSource creates a FileSource. Empty includes match every file.
func NewFileSource(root string, includes, excludes []string) *FileSource {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	return &FileSource{
		root:     root,
		includes: includes,
		excludes: excludes,
	}
}

// Load reads every matching file under the root.
func (s *FileSource) Load() ([]domain.Document, error) {
	root, err := filepath.Abs(s.root)
	if err != nil {
		return nil, err
	}

	var docs []domain.Document
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if s.matchesAny(s.excludes, relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.matchesAny(s.includes, relPath) || s.matchesAny(s.excludes, relPath) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, domain.Document{
			ID:      relPath,
			Content: string(data),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (s *FileSource) matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}
