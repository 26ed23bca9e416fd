package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Ingest Run Methods
// -----------------------------------------------------------------------------

// Run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run is the audit record for one ingestion batch.
type Run struct {
	ID         uuid.UUID  `json:"id"`
	Keyword    string     `json:"keyword"`
	Status     string     `json:"status"`
	Found      int        `json:"found"`
	Processed  int        `json:"processed"`
	Saved      int        `json:"saved"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// CreateRun records the start of an ingestion batch and returns its ID.
func (db *DB) CreateRun(ctx context.Context, keyword string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO ingest_runs (keyword, status) VALUES ($1, $2) RETURNING id`,
		keyword, RunStatusRunning,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// FinishRun records the outcome of an ingestion batch.
func (db *DB) FinishRun(ctx context.Context, runID uuid.UUID, status string, found, processed, saved int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE ingest_runs
		 SET status = $1, found = $2, processed = $3, saved = $4, finished_at = NOW()
		 WHERE id = $5`,
		status, found, processed, saved, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// ListRuns retrieves recent ingestion runs, newest first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, keyword, status, found, processed, saved, started_at, finished_at
		 FROM ingest_runs ORDER BY started_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Keyword, &r.Status, &r.Found, &r.Processed, &r.Saved, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
