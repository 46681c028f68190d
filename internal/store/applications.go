package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ApplicationLogInput describes one application attempt to record
type ApplicationLogInput struct {
	JobID             uuid.UUID
	Portal            string
	Status            string
	ErrorMessage      string
	ScreenshotPath    string
	QuestionsAnswered map[string]string
	Duration          time.Duration
}

// LogApplication records an application attempt and returns the log entry ID
func (db *DB) LogApplication(ctx context.Context, input ApplicationLogInput) (uuid.UUID, error) {
	var answers []byte
	if len(input.QuestionsAnswered) > 0 {
		var err error
		answers, err = json.Marshal(input.QuestionsAnswered)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal answered questions: %w", err)
		}
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO application_logs (job_id, portal, status, error_message, screenshot_path, questions_answered, duration_seconds)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)
		 RETURNING id`,
		input.JobID, input.Portal, input.Status, input.ErrorMessage,
		input.ScreenshotPath, answers, input.Duration.Seconds(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to log application: %w", err)
	}
	return id, nil
}

// ApplicationHistory retrieves the application attempts for a job, newest first
func (db *DB) ApplicationHistory(ctx context.Context, jobID uuid.UUID) ([]ApplicationLogRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, portal, status, error_message, screenshot_path, questions_answered, duration_seconds, timestamp
		 FROM application_logs WHERE job_id = $1 ORDER BY timestamp DESC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list application logs: %w", err)
	}
	defer rows.Close()

	var logs []ApplicationLogRow
	for rows.Next() {
		var l ApplicationLogRow
		if err := rows.Scan(&l.ID, &l.JobID, &l.Portal, &l.Status, &l.ErrorMessage, &l.ScreenshotPath, &l.QuestionsAnswered, &l.DurationSeconds, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan application log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, nil
}

// Answers unmarshals the recorded question answers, or returns nil if absent
func (l *ApplicationLogRow) Answers() (map[string]string, error) {
	if len(l.QuestionsAnswered) == 0 {
		return nil, nil
	}
	var answers map[string]string
	if err := json.Unmarshal(l.QuestionsAnswered, &answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answered questions: %w", err)
	}
	return answers, nil
}
