// Package vector implements the canonical label index on top of
// PostgreSQL with the pgvector extension.
package vector

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"autolabel/internal/models"
	"autolabel/internal/store"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type StoreImpl struct {
	db *pgxpool.Pool
}

var _ store.LabelIndex = (*StoreImpl)(nil)

func NewStore(ctx context.Context, dsn string) (*StoreImpl, error) {
	if dsn == "" {
		return nil, fmt.Errorf("label index DSN cannot be empty")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse label index DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping label index: %w", err)
	}
	log.Info("connected to PostgreSQL label index")
	return &StoreImpl{db: pool}, nil
}

func (s *StoreImpl) Close() error {
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

func (s *StoreImpl) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("label index connection is not initialized")
	}
	return s.db.Ping(ctx)
}

// Query returns the topK nearest canonical labels within a category,
// best first. Scores are cosine similarities in [0,1].
func (s *StoreImpl) Query(ctx context.Context, vector pgvector.Vector, topK int, category string) ([]models.LabelMatch, error) {
	query := `SELECT label, 1 - (vector <=> $1) AS score
	          FROM label_vocab WHERE category = $2
	          ORDER BY vector <=> $1 LIMIT $3`

	rows, err := s.db.Query(ctx, query, vector, category, topK)
	if err != nil {
		return nil, fmt.Errorf("label index query: %w", err)
	}
	defer rows.Close()

	var matches []models.LabelMatch
	for rows.Next() {
		var m models.LabelMatch
		if err := rows.Scan(&m.Label, &m.Score); err != nil {
			return nil, fmt.Errorf("scan label match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate label matches: %w", err)
	}
	return matches, nil
}

// Upsert inserts or refreshes one vocabulary entry, keyed by
// (category, label).
func (s *StoreImpl) Upsert(ctx context.Context, entry *models.VocabEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	query := `INSERT INTO label_vocab (id, category, label, catalog_id, vector)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (category, label)
	          DO UPDATE SET catalog_id = EXCLUDED.catalog_id, vector = EXCLUDED.vector
	          RETURNING created_at`
	err := s.db.QueryRow(ctx, query, entry.ID, entry.Category, entry.Label, entry.CatalogID, pgvector.NewVector(entry.Vector.Slice())).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert vocab entry: %w", err)
	}
	return nil
}
