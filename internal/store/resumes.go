package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// SaveResume stores a generated resume along with the content snapshot it
// was rendered from, and returns its ID
func (db *DB) SaveResume(ctx context.Context, jobID uuid.UUID, name, filePath string, content *types.SelectedContent, atsScore float64) (uuid.UUID, error) {
	snapshot, err := json.Marshal(content)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal content snapshot: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (name, target_job_id, content_snapshot, file_path, ats_score)
		 VALUES (NULLIF($1, ''), $2, $3, NULLIF($4, ''), $5)
		 RETURNING id`,
		name, jobID, snapshot, filePath, atsScore,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a resume by ID
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*ResumeRow, error) {
	var r ResumeRow
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, target_job_id, content_snapshot, file_path, ats_score, created_at
		 FROM resumes WHERE id = $1`, id,
	).Scan(&r.ID, &r.Name, &r.TargetJobID, &r.ContentSnapshot, &r.FilePath, &r.ATSScore, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// ResumesForJob retrieves all resumes generated for a job, newest first
func (db *DB) ResumesForJob(ctx context.Context, jobID uuid.UUID) ([]ResumeRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, target_job_id, content_snapshot, file_path, ats_score, created_at
		 FROM resumes WHERE target_job_id = $1 ORDER BY created_at DESC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []ResumeRow
	for rows.Next() {
		var r ResumeRow
		if err := rows.Scan(&r.ID, &r.Name, &r.TargetJobID, &r.ContentSnapshot, &r.FilePath, &r.ATSScore, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, nil
}

// Snapshot unmarshals the stored content snapshot, or returns nil if absent
func (r *ResumeRow) Snapshot() (*types.SelectedContent, error) {
	if len(r.ContentSnapshot) == 0 {
		return nil, nil
	}
	var content types.SelectedContent
	if err := json.Unmarshal(r.ContentSnapshot, &content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content snapshot: %w", err)
	}
	return &content, nil
}
