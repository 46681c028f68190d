package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/ats-optimizer/internal/store"
)

// ListJobsResponse represents the response for listing jobs
type ListJobsResponse struct {
	Jobs  []store.JobRow `json:"jobs"`
	Count int            `json:"count"`
}

// handleListJobs lists stored jobs with optional filters
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	filters := store.JobFilters{
		Status: r.URL.Query().Get("status"),
		Source: r.URL.Query().Get("source"),
		Limit:  parseQueryInt(r, "limit", 50, 200),
	}
	if filters.Status != "" && !store.ValidJobStatus(filters.Status) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid status filter")
		return
	}
	if minScore := r.URL.Query().Get("min_score"); minScore != "" {
		v, err := strconv.ParseFloat(minScore, 64)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid min_score")
			return
		}
		filters.MinScore = v
	}

	jobs, err := s.db.ListJobs(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{Jobs: jobs, Count: len(jobs)})
}

// handleGetJob retrieves a job by its ID
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// UpdateJobRequest is the PATCH body for a job
type UpdateJobRequest struct {
	Status string `json:"status" validate:"required"`
}

// handleUpdateJob updates a job's status
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "status is required")
		return
	}
	if !store.ValidJobStatus(req.Status) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid status: "+req.Status)
		return
	}

	if err := s.db.UpdateJobStatus(r.Context(), jobID, req.Status); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleJobApplications lists the application attempts for a job
func (s *Server) handleJobApplications(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	logs, err := s.db.ApplicationHistory(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"applications": logs,
		"count":        len(logs),
	})
}

// handleListSearchRuns lists recent search runs
func (s *Server) handleListSearchRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	runs, err := s.db.RecentSearchRuns(r.Context(), parseQueryInt(r, "limit", 20, 100))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"runs":  runs,
		"count": len(runs),
	})
}

// parseQueryInt parses an integer query parameter with a default and an
// optional maximum (0 means no maximum)
func parseQueryInt(r *http.Request, name string, def, maximum int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	if maximum > 0 && v > maximum {
		return maximum
	}
	return v
}
