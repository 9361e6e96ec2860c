package port

import "semdex/internal/domain"

// DocumentSource yields {id, content} pairs from an external collaborator,
// such as note storage or a directory of extracted text files.
type DocumentSource interface {
	Load() ([]domain.Document, error)
}
