package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/ats-optimizer/internal/types"
)

// Job status constants
const (
	JobStatusNew          = "NEW"
	JobStatusQueued       = "QUEUED"
	JobStatusApplied      = "APPLIED"
	JobStatusSkipped      = "SKIPPED"
	JobStatusFailed       = "FAILED"
	JobStatusReviewNeeded = "REVIEW_NEEDED"
)

// Application attempt status constants
const (
	ApplicationStatusSuccess      = "SUCCESS"
	ApplicationStatusFailed       = "FAILED"
	ApplicationStatusSkipped      = "SKIPPED"
	ApplicationStatusManualNeeded = "MANUAL_NEEDED"
)

// JobRow represents a discovered job listing
type JobRow struct {
	ID              uuid.UUID  `json:"id"`
	ExternalID      *string    `json:"external_id,omitempty"`
	Title           string     `json:"title"`
	Company         string     `json:"company"`
	Location        *string    `json:"location,omitempty"`
	SalaryRange     *string    `json:"salary_range,omitempty"`
	DescriptionText *string    `json:"description_text,omitempty"`
	URL             string     `json:"url"`
	Source          string     `json:"source"`
	MatchScore      float64    `json:"match_score"`
	Status          string     `json:"status"`
	DiscoveredAt    time.Time  `json:"discovered_at"`
	AppliedAt       *time.Time `json:"applied_at,omitempty"`
	ResumePath      *string    `json:"resume_path,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// ResumeRow represents a generated resume tied to a job
type ResumeRow struct {
	ID              uuid.UUID  `json:"id"`
	Name            *string    `json:"name,omitempty"`
	TargetJobID     *uuid.UUID `json:"target_job_id,omitempty"`
	ContentSnapshot []byte     `json:"-"`
	FilePath        *string    `json:"file_path,omitempty"`
	ATSScore        *float64   `json:"ats_score,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ApplicationLogRow records one application attempt against a job
type ApplicationLogRow struct {
	ID                uuid.UUID `json:"id"`
	JobID             uuid.UUID `json:"job_id"`
	Portal            string    `json:"portal"`
	Status            string    `json:"status"`
	ErrorMessage      *string   `json:"error_message,omitempty"`
	ScreenshotPath    *string   `json:"screenshot_path,omitempty"`
	QuestionsAnswered []byte    `json:"-"`
	DurationSeconds   *float64  `json:"duration_seconds,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

// SearchRunRow records one search execution against a portal
type SearchRunRow struct {
	ID          uuid.UUID  `json:"id"`
	Portal      string     `json:"portal"`
	SearchQuery *string    `json:"search_query,omitempty"`
	JobsFound   int        `json:"jobs_found"`
	JobsNew     int        `json:"jobs_new"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ValidJobStatus reports whether s is a recognized job status
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusNew, JobStatusQueued, JobStatusApplied, JobStatusSkipped, JobStatusFailed, JobStatusReviewNeeded:
		return true
	}
	return false
}

// IsTerminal returns true once a job needs no further processing
func (j *JobRow) IsTerminal() bool {
	switch j.Status {
	case JobStatusApplied, JobStatusSkipped, JobStatusFailed:
		return true
	}
	return false
}

// CanApply returns true if the job is still eligible for an application attempt
func (j *JobRow) CanApply() bool {
	return j.Status == JobStatusNew || j.Status == JobStatusQueued
}

// ToDiscovered converts a stored row back into the in-memory job shape
func (j *JobRow) ToDiscovered() types.DiscoveredJob {
	job := types.DiscoveredJob{
		Title:   j.Title,
		Company: j.Company,
		URL:     j.URL,
		Source:  j.Source,
	}
	if j.ExternalID != nil {
		job.ExternalID = *j.ExternalID
	}
	if j.Location != nil {
		job.Location = *j.Location
	}
	if j.SalaryRange != nil {
		job.SalaryRange = *j.SalaryRange
	}
	if j.DescriptionText != nil {
		job.DescriptionText = *j.DescriptionText
	}
	return job
}
