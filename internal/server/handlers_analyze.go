package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/ats-optimizer/internal/analyzer"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// AnalyzeRequest is the request body for resume scoring
type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description"`
}

// AnalyzeResponse pairs the score breakdown with improvement suggestions
type AnalyzeResponse struct {
	Result      *types.ScoreResult `json:"result"`
	Suggestions []string           `json:"suggestions"`
}

// handleAnalyzeScore scores resume text against a job description
func (s *Server) handleAnalyzeScore(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			s.errorResponse(w, http.StatusBadRequest, errs[0].Field()+" is required")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request")
		return
	}

	result := analyzer.Score(req.ResumeText, req.JobDescription)
	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		Result:      result,
		Suggestions: analyzer.GenerateSuggestions(result),
	})
}
