package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// StartSearchRun records the start of a portal search and returns its ID
func (db *DB) StartSearchRun(ctx context.Context, portal, query string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO search_runs (portal, search_query)
		 VALUES ($1, NULLIF($2, ''))
		 RETURNING id`,
		portal, query,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to start search run: %w", err)
	}
	return id, nil
}

// CompleteSearchRun records the outcome of a portal search
func (db *DB) CompleteSearchRun(ctx context.Context, runID uuid.UUID, jobsFound, jobsNew int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE search_runs SET jobs_found = $1, jobs_new = $2, completed_at = NOW() WHERE id = $3`,
		jobsFound, jobsNew, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete search run: %w", err)
	}
	return nil
}

// RecentSearchRuns retrieves recent search runs, newest first
func (db *DB) RecentSearchRuns(ctx context.Context, limit int) ([]SearchRunRow, error) {
	if limit == 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, portal, search_query, jobs_found, jobs_new, started_at, completed_at
		 FROM search_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list search runs: %w", err)
	}
	defer rows.Close()

	var runs []SearchRunRow
	for rows.Next() {
		var r SearchRunRow
		if err := rows.Scan(&r.ID, &r.Portal, &r.SearchQuery, &r.JobsFound, &r.JobsNew, &r.StartedAt, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, nil
}
