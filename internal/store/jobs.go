package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/ats-optimizer/internal/types"
)

const jobColumns = `id, external_id, title, company, location, salary_range,
	description_text, url, source, match_score, status, discovered_at,
	applied_at, resume_path, notes`

func scanJob(row pgx.Row) (*JobRow, error) {
	var j JobRow
	err := row.Scan(
		&j.ID, &j.ExternalID, &j.Title, &j.Company, &j.Location, &j.SalaryRange,
		&j.DescriptionText, &j.URL, &j.Source, &j.MatchScore, &j.Status,
		&j.DiscoveredAt, &j.AppliedAt, &j.ResumePath, &j.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// InsertJob stores a newly discovered job and returns its ID. Re-inserting
// the same URL is a no-op and returns the existing row's ID.
func (db *DB) InsertJob(ctx context.Context, job types.DiscoveredJob, matchScore float64) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (external_id, title, company, location, salary_range, description_text, url, source, match_score, status)
		 VALUES (NULLIF($1, ''), $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, 'NEW')
		 ON CONFLICT (url) DO UPDATE SET match_score = EXCLUDED.match_score
		 RETURNING id`,
		job.ExternalID, job.Title, job.Company, job.Location, job.SalaryRange,
		job.DescriptionText, job.URL, job.Source, matchScore,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert job: %w", err)
	}
	return id, nil
}

// GetJob retrieves a job by ID
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*JobRow, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// GetJobByURL retrieves a job by its canonical URL
func (db *DB) GetJobByURL(ctx context.Context, url string) (*JobRow, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE url = $1`, url))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job by url: %w", err)
	}
	return job, nil
}

// JobFilters holds optional filters for listing jobs
type JobFilters struct {
	Status   string
	Source   string
	MinScore float64
	Limit    int
}

// ListJobs retrieves jobs with optional filters, best-scored first
func (db *DB) ListJobs(ctx context.Context, filters JobFilters) ([]JobRow, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}
	if filters.Source != "" {
		query += fmt.Sprintf(" AND source = $%d", argNum)
		args = append(args, filters.Source)
		argNum++
	}
	if filters.MinScore > 0 {
		query += fmt.Sprintf(" AND match_score >= $%d", argNum)
		args = append(args, filters.MinScore)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY match_score DESC, discovered_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []JobRow
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

// UpdateJobStatus updates a job's status, stamping applied_at on APPLIED
func (db *DB) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !ValidJobStatus(status) {
		return fmt.Errorf("invalid job status: %s", status)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1,
		 applied_at = CASE WHEN $1 = 'APPLIED' THEN NOW() ELSE applied_at END
		 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}

// SetJobResume records the rendered resume path for a job
func (db *DB) SetJobResume(ctx context.Context, id uuid.UUID, resumePath string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET resume_path = $1 WHERE id = $2`,
		resumePath, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set job resume path: %w", err)
	}
	return nil
}

// JobURLs returns the URLs of every stored job, for duplicate detection
func (db *DB) JobURLs(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx, `SELECT url FROM jobs`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan job url: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, nil
}
