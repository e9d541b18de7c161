package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/server/middleware"
	"github.com/jonathan/resume-matcher/internal/types"
)

// AnalyzeRequest represents the request body for /analyze
type AnalyzeRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
	JobText    string `json:"job_text" validate:"required"`
	Suggest    bool   `json:"suggest,omitempty"`
}

// handleAnalyze scores a resume against a job description and returns the MatchReport
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeAnalyzeRequest(w, r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), req.ResumeText, req.JobText)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	if req.Suggest {
		s.addSuggestions(r.Context(), req, report)
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// decodeAnalyzeRequest parses and validates the request body, enforcing the input cap
func (s *Server) decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (*AnalyzeRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req AnalyzeRequest
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrValidation{Field: "body", Message: "request body too large"}
		}
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}

	if err := s.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			message := "failed " + fe.Tag() + " validation"
			if fe.Tag() == "required" {
				message = "is required"
			}
			return nil, &ErrValidation{Field: fe.Field(), Message: message}
		}
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}

	if err := ingestion.CheckLength(req.ResumeText, matching.InputResume, s.maxInputChars); err != nil {
		return nil, err
	}
	if err := ingestion.CheckLength(req.JobText, matching.InputJob, s.maxInputChars); err != nil {
		return nil, err
	}
	return &req, nil
}

// addSuggestions fills report.Suggestions. Failures never fail the request; they
// are reported as a warning next to the valid scores.
func (s *Server) addSuggestions(ctx context.Context, req *AnalyzeRequest, report *types.MatchReport) {
	if s.suggester == nil {
		report.AddWarning(types.WarningSuggestionsUnavailable, "suggestions are not configured on this server")
		return
	}

	text, err := s.suggester.Generate(ctx, req.ResumeText, req.JobText, report)
	if err != nil {
		s.logger.Warn("suggestion generation failed",
			slog.String("request_id", middleware.GetRequestID(ctx)),
			slog.Any("error", err))
		report.AddWarning(types.WarningSuggestionsUnavailable, "suggestion generation failed")
		return
	}
	report.Suggestions = text
}
