// Package worker runs the Asynq consumer that processes asynchronously
// submitted labeling batches.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"autolabel/internal/models"
	"autolabel/internal/store"
	"autolabel/internal/tasks"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// Labeler is the synchronous batch pipeline the worker drives.
type Labeler interface {
	Run(ctx context.Context, category string, records []models.Record) []models.LabeledResult
}

// LabelBatchProcessor handles TypeLabelBatch tasks: run the pipeline
// and persist the results on the job record.
type LabelBatchProcessor struct {
	Labeler Labeler
	Jobs    store.JobStore
}

func (p *LabelBatchProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.LabelBatchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// A payload that cannot be decoded will never succeed.
		return fmt.Errorf("unmarshal label batch payload: %v: %w", err, asynq.SkipRetry)
	}
	log.Infof("processing label batch job %s (%d records)", payload.JobID, len(payload.Records))

	if err := p.Jobs.MarkJobRunning(ctx, payload.JobID); err != nil {
		log.Warnf("mark job %s running: %v", payload.JobID, err)
	}

	results := p.Labeler.Run(ctx, payload.Category, payload.Records)

	body, err := json.Marshal(results)
	if err != nil {
		reason := fmt.Sprintf("marshal results: %v", err)
		if ferr := p.Jobs.FailJob(ctx, payload.JobID, reason); ferr != nil {
			log.Errorf("fail job %s: %v", payload.JobID, ferr)
		}
		return fmt.Errorf("%s: %w", reason, asynq.SkipRetry)
	}
	if err := p.Jobs.CompleteJob(ctx, payload.JobID, body); err != nil {
		return fmt.Errorf("complete job %s: %w", payload.JobID, err)
	}
	log.Infof("label batch job %s completed", payload.JobID)
	return nil
}

// Run starts the Asynq server and blocks until it stops.
func Run(redisAddr, password string, db, concurrency int, queues map[string]int, processor *LabelBatchProcessor) error {
	if len(queues) == 0 {
		queues = map[string]int{"default": 1}
	}
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
		asynq.Config{
			Concurrency: concurrency,
			Queues:      queues,
		},
	)
	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeLabelBatch, processor)

	log.Infof("starting label worker (concurrency=%d)", concurrency)
	return srv.Run(mux)
}
