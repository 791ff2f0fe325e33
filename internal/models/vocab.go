package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// VocabEntry is one canonical label in the per-category vocabulary,
// stored with its embedding in the label index.
type VocabEntry struct {
	ID        uuid.UUID
	Category  string
	Label     string
	CatalogID string
	Vector    pgvector.Vector
	CreatedAt time.Time
}
