// Package db provides PostgreSQL storage for vacancies and companies.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// querier is the subset of pgx operations shared by the pool and a
// transaction, so the same statements serve both paths.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Setup creates the schema if it does not yet exist.
func (db *DB) Setup(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			company_id   TEXT PRIMARY KEY,
			company_name TEXT NOT NULL,
			site_url     TEXT,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS vacancies (
			url          TEXT PRIMARY KEY,
			company_id   TEXT REFERENCES companies(company_id) ON DELETE CASCADE,
			vacancy_name TEXT NOT NULL,
			requirements TEXT,
			salary_from  INTEGER,
			salary_to    INTEGER,
			experience   TEXT,
			remote       BOOLEAN NOT NULL DEFAULT FALSE,
			currency     TEXT,
			company_name TEXT,
			last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ingest_runs (
			id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			keyword     TEXT NOT NULL,
			status      TEXT NOT NULL DEFAULT 'running',
			found       INTEGER NOT NULL DEFAULT 0,
			processed   INTEGER NOT NULL DEFAULT 0,
			saved       INTEGER NOT NULL DEFAULT 0,
			started_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			finished_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_vacancies_company_id ON vacancies(company_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// TotalCount returns the row count for an entity, for pagination math.
// Supported entities: "companies", "vacancies".
func (db *DB) TotalCount(ctx context.Context, entity string) (int, error) {
	var table string
	switch entity {
	case "companies":
		table = "companies"
	case "vacancies":
		table = "vacancies"
	default:
		return 0, fmt.Errorf("unknown entity %q", entity)
	}

	var count int
	if err := db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", entity, err)
	}
	return count, nil
}

// Batch is a transactional write handle. All upserts performed through one
// Batch commit or roll back together.
type Batch struct {
	tx pgx.Tx
}

// BeginBatch opens a transaction for one ingestion batch.
func (db *DB) BeginBatch(ctx context.Context) (*Batch, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin batch: %w", err)
	}
	return &Batch{tx: tx}, nil
}

// Commit makes the batch durable.
func (b *Batch) Commit(ctx context.Context) error {
	if err := b.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// Rollback discards the batch. Safe to call after Commit.
func (b *Batch) Rollback(ctx context.Context) {
	_ = b.tx.Rollback(ctx)
}
