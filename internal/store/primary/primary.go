// Package primary implements the relational side of persistence: the
// label catalog table and batch job records.
package primary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"autolabel/internal/models"
	"autolabel/internal/store"
)

type StoreImpl struct {
	db *pgxpool.Pool
}

var (
	_ store.CatalogStore = (*StoreImpl)(nil)
	_ store.JobStore     = (*StoreImpl)(nil)
)

func NewPrimaryStore(ctx context.Context, dsn string) (*StoreImpl, error) {
	if dsn == "" {
		return nil, fmt.Errorf("primary store DSN cannot be empty")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse primary store DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping primary store: %w", err)
	}
	log.Info("connected to PostgreSQL primary store")
	return &StoreImpl{db: pool}, nil
}

func (s *StoreImpl) Close() error {
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// LoadCatalog reads the full label -> catalog id table. It is loaded
// once at startup and cached in memory for the process lifetime.
func (s *StoreImpl) LoadCatalog(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.Query(ctx, `SELECT label, catalog_id FROM label_catalog`)
	if err != nil {
		return nil, fmt.Errorf("load label catalog: %w", err)
	}
	defer rows.Close()

	catalog := make(map[string]string)
	for rows.Next() {
		var label, catalogID string
		if err := rows.Scan(&label, &catalogID); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		catalog[label] = catalogID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}
	return catalog, nil
}

func (s *StoreImpl) UpsertCatalogEntry(ctx context.Context, label, catalogID string) error {
	query := `INSERT INTO label_catalog (label, catalog_id) VALUES ($1, $2)
	          ON CONFLICT (label) DO UPDATE SET catalog_id = EXCLUDED.catalog_id`
	if _, err := s.db.Exec(ctx, query, label, catalogID); err != nil {
		return fmt.Errorf("upsert catalog entry: %w", err)
	}
	return nil
}

func (s *StoreImpl) CreateJob(ctx context.Context, job *models.BatchJob) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	query := `INSERT INTO batch_jobs (id, category, status, item_count)
	          VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`
	err := s.db.QueryRow(ctx, query, job.ID, job.Category, job.Status, job.ItemCount).
		Scan(&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create batch job: %w", err)
	}
	return nil
}

func (s *StoreImpl) MarkJobRunning(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, models.JobStatusRunning)
}

func (s *StoreImpl) CompleteJob(ctx context.Context, id uuid.UUID, results json.RawMessage) error {
	query := `UPDATE batch_jobs SET status = $2, results = $3, updated_at = now() WHERE id = $1`
	tag, err := s.db.Exec(ctx, query, id, models.JobStatusCompleted, results)
	if err != nil {
		return fmt.Errorf("complete batch job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *StoreImpl) FailJob(ctx context.Context, id uuid.UUID, reason string) error {
	query := `UPDATE batch_jobs SET status = $2, error = $3, updated_at = now() WHERE id = $1`
	tag, err := s.db.Exec(ctx, query, id, models.JobStatusFailed, reason)
	if err != nil {
		return fmt.Errorf("fail batch job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *StoreImpl) GetJob(ctx context.Context, id uuid.UUID) (*models.BatchJob, error) {
	query := `SELECT id, category, status, item_count, results, error, created_at, updated_at
	          FROM batch_jobs WHERE id = $1`
	job := &models.BatchJob{}
	var resultsJSON []byte
	var jobErr *string
	err := s.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Category, &job.Status, &job.ItemCount,
		&resultsJSON, &jobErr, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get batch job: %w", err)
	}
	job.Results = resultsJSON
	if jobErr != nil {
		job.Error = *jobErr
	}
	return job, nil
}

func (s *StoreImpl) setStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := s.db.Exec(ctx, `UPDATE batch_jobs SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
