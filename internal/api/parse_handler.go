package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"recruitai/internal/resume"
	"recruitai/internal/storage"

	"go.uber.org/zap"
)

const maxBatchSize = 10

// ParseResumeHandler runs the extraction pipeline for one candidate.
// @Summary Parse resume
// @Description Extract skills, experience and education from a candidate's resume
// @Tags ai
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]interface{}
// @Router /ai/parse/{id} [post]
func (a *API) ParseResumeHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	parsed, candidate, err := a.pipeline.Parse(r.Context(), id)
	if err != nil {
		a.writeParseError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Resume parsing completed successfully",
		"parsed":    parsed,
		"candidate": candidate,
	})
}

// writeParseError maps pipeline failures onto the error taxonomy. Nothing here
// is retried; the caller re-issues the whole request if it wants another go.
func (a *API) writeParseError(w http.ResponseWriter, candidateID string, err error) {
	var insufficient *resume.InsufficientTextError
	var badFormat *resume.AIResponseFormatError
	var external *resume.ExternalServiceError

	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Candidate not found")
	case errors.Is(err, resume.ErrFileMissing):
		writeMessage(w, http.StatusNotFound, "Resume file not found")
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message":          "Could not extract text from resume. Please try a different format.",
			"resumeTextLength": insufficient.Length,
		})
	case errors.As(err, &badFormat):
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"message":     "AI parsing failed - invalid response format",
			"error":       badFormat.Error(),
			"rawResponse": badFormat.Raw,
		})
	case errors.As(err, &external):
		writeError(w, http.StatusInternalServerError, "AI parsing failed", external)
	default:
		a.logger.Error("resume parsing failed",
			zap.String("candidate_id", candidateID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Resume parsing failed", err)
	}
}

type batchParseRequest struct {
	CandidateIDs []string `json:"candidateIds"`
}

// BatchParseHandler marks up to 10 candidates as queued for parsing.
// @Summary Batch parse resumes
// @Tags ai
// @Accept json
// @Produce json
// @Param request body batchParseRequest true "Candidate IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /ai/parse/batch [post]
func (a *API) BatchParseHandler(w http.ResponseWriter, r *http.Request) {
	var req batchParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Please provide an array of candidate IDs")
		return
	}
	if len(req.CandidateIDs) == 0 {
		writeMessage(w, http.StatusBadRequest, "Please provide an array of candidate IDs")
		return
	}
	if len(req.CandidateIDs) > maxBatchSize {
		writeMessage(w, http.StatusBadRequest, "Cannot process more than 10 resumes at once")
		return
	}

	results, errs := a.pipeline.QueueBatch(r.Context(), req.CandidateIDs)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Batch parsing initiated",
		"results": results,
		"errors":  errs,
	})
}
