// Package cache implements the two-tier content-addressed embedding cache:
// a bounded in-memory LRU tier in front of a persistent tier, with
// best-effort asynchronous write-back.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"semdex/internal/adapter/analyzer"
)

// Key derives the canonical cache key for text: the hex-encoded sha256 of
// its whitespace-normalized form. Distinct texts that normalize to the same
// form deliberately share one entry.
func Key(text string) string {
	hash := sha256.Sum256([]byte(analyzer.Normalize(text)))
	return hex.EncodeToString(hash[:])
}
