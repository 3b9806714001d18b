package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/screening"
	"github.com/jonathan/resume-screener/internal/types"
)

// ResumeInput is one candidate document in a screening request.
type ResumeInput struct {
	Name string `json:"name,omitempty"`
	Text string `json:"text" validate:"required"`
}

// ScreenRequest represents the request body for /screen. Either job_text or
// job_url must be set.
type ScreenRequest struct {
	JobText        string        `json:"job_text,omitempty"`
	JobURL         string        `json:"job_url,omitempty" validate:"omitempty,url"`
	Resumes        []ResumeInput `json:"resumes" validate:"required,min=1,dive"`
	RequiredSkills string        `json:"required_skills,omitempty"`
	TopK           int           `json:"top_k,omitempty" validate:"gte=0,lte=50"`
}

// ScreenResponse represents the response for /screen
type ScreenResponse struct {
	RunID   string           `json:"run_id"`
	Results []types.ScoreRow `json:"results"`
}

// handleScreen runs a screening pass over the posted resumes
func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	var req ScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			field := validationErrors[0]
			s.errorResponse(w, http.StatusBadRequest, "Validation failed on field '"+field.Field()+"'")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	jobText := req.JobText
	if strings.TrimSpace(jobText) == "" {
		if req.JobURL == "" {
			s.errorResponse(w, http.StatusBadRequest, "Either job_text or job_url is required")
			return
		}
		fetched, err := ingestion.FetchJobPosting(r.Context(), req.JobURL)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "Failed to fetch job posting: "+err.Error())
			return
		}
		jobText = fetched
	}

	resumes := make([]screening.Resume, 0, len(req.Resumes))
	for _, resume := range req.Resumes {
		resumes = append(resumes, screening.Resume{
			Name: resume.Name,
			Text: ingestion.CleanText(resume.Text),
		})
	}

	result, err := s.runner.Run(r.Context(), screening.Request{
		JobText:        jobText,
		Resumes:        resumes,
		RequiredSkills: req.RequiredSkills,
		TopK:           req.TopK,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, screening.ErrEmptyJob) || errors.Is(err, screening.ErrNoResumes) {
			status = http.StatusBadRequest
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	// CSV on request, JSON otherwise
	if strings.Contains(r.Header.Get("Accept"), "text/csv") {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="screening_results.csv"`)
		if err := screening.WriteCSV(w, result.Rows); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to write CSV: "+err.Error())
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, ScreenResponse{
		RunID:   uuid.NewString(),
		Results: result.Rows,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
