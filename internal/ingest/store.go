package ingest

import (
	"context"

	"github.com/google/uuid"

	"github.com/mpetrenko/hh-scout/internal/db"
)

// PgStore adapts *db.DB to the Store interface.
type PgStore struct {
	DB *db.DB
}

func (s PgStore) BeginBatch(ctx context.Context) (Batch, error) {
	batch, err := s.DB.BeginBatch(ctx)
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (s PgStore) CreateRun(ctx context.Context, keyword string) (uuid.UUID, error) {
	return s.DB.CreateRun(ctx, keyword)
}

func (s PgStore) FinishRun(ctx context.Context, runID uuid.UUID, status string, found, processed, saved int) error {
	return s.DB.FinishRun(ctx, runID, status, found, processed, saved)
}
