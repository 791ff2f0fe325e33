package store

import (
	"context"

	"autolabel/internal/tasks"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// JobClient enqueues background labeling work.
type JobClient interface {
	EnqueueLabelBatch(ctx context.Context, payload tasks.LabelBatchPayload) error
	Close() error
}

var _ JobClient = (*AsynqJobClient)(nil)

// AsynqJobClient pushes tasks onto the Redis-backed Asynq queue.
type AsynqJobClient struct {
	client *asynq.Client
}

func NewAsynqJobClient(redisAddr, password string, db int) *AsynqJobClient {
	cli := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})
	return &AsynqJobClient{client: cli}
}

func (jc *AsynqJobClient) EnqueueLabelBatch(ctx context.Context, payload tasks.LabelBatchPayload) error {
	task, err := tasks.NewLabelBatchTask(payload)
	if err != nil {
		return err
	}
	info, err := jc.client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}
	log.Debugf("enqueued %s task id=%s queue=%s", task.Type(), info.ID, info.Queue)
	return nil
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}
