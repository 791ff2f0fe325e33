package store

import (
	"context"
	"encoding/json"

	"autolabel/internal/models"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// LabelIndex is the nearest-neighbor search surface over canonical
// label embeddings, filtered per category.
type LabelIndex interface {
	Query(ctx context.Context, vector pgvector.Vector, topK int, category string) ([]models.LabelMatch, error)
	Upsert(ctx context.Context, entry *models.VocabEntry) error
	Ping(ctx context.Context) error
	Close() error
}

// CatalogStore resolves canonical label names to stable catalog ids.
type CatalogStore interface {
	LoadCatalog(ctx context.Context) (map[string]string, error)
	UpsertCatalogEntry(ctx context.Context, label, catalogID string) error
}

// JobStore persists async batch labeling jobs.
type JobStore interface {
	CreateJob(ctx context.Context, job *models.BatchJob) error
	MarkJobRunning(ctx context.Context, id uuid.UUID) error
	CompleteJob(ctx context.Context, id uuid.UUID, results json.RawMessage) error
	FailJob(ctx context.Context, id uuid.UUID, reason string) error
	GetJob(ctx context.Context, id uuid.UUID) (*models.BatchJob, error)
}
