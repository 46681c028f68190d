// Package store provides PostgreSQL persistence for jobs, resumes, and
// application history.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	external_id TEXT,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	location TEXT,
	salary_range TEXT,
	description_text TEXT,
	url TEXT UNIQUE NOT NULL,
	source TEXT NOT NULL,
	match_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'NEW',
	discovered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	applied_at TIMESTAMPTZ,
	resume_path TEXT,
	notes TEXT
);

CREATE TABLE IF NOT EXISTS resumes (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name TEXT,
	target_job_id UUID REFERENCES jobs(id) ON DELETE SET NULL,
	content_snapshot JSONB,
	file_path TEXT,
	ats_score DOUBLE PRECISION,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS application_logs (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	portal TEXT NOT NULL,
	status TEXT NOT NULL,
	error_message TEXT,
	screenshot_path TEXT,
	questions_answered JSONB,
	duration_seconds DOUBLE PRECISION,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS search_runs (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	portal TEXT NOT NULL,
	search_query TEXT,
	jobs_found INTEGER NOT NULL DEFAULT 0,
	jobs_new INTEGER NOT NULL DEFAULT 0,
	started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
CREATE INDEX IF NOT EXISTS idx_application_logs_job_id ON application_logs(job_id);
`

// Migrate creates the tables if they do not exist
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
