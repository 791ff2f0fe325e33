package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Batch job statuses.
const (
	JobStatusEnqueued  = "enqueued"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// BatchJob tracks one asynchronously submitted labeling batch.
type BatchJob struct {
	ID        uuid.UUID       `json:"id"`
	Category  string          `json:"category"`
	Status    string          `json:"status"`
	ItemCount int             `json:"item_count"`
	Results   json.RawMessage `json:"results,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
