// Package tasks defines the Asynq task types exchanged between the API
// server and the background worker.
package tasks

import (
	"encoding/json"
	"fmt"

	"autolabel/internal/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TypeLabelBatch is the task type for asynchronously labeling a batch.
const TypeLabelBatch = "label:batch"

// LabelBatchPayload is the task body for TypeLabelBatch.
type LabelBatchPayload struct {
	JobID    uuid.UUID       `json:"job_id"`
	Category string          `json:"category"`
	Records  []models.Record `json:"records"`
}

func NewLabelBatchTask(payload LabelBatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal label batch payload: %w", err)
	}
	return asynq.NewTask(TypeLabelBatch, body), nil
}
