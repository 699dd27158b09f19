package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"recruitai/internal/ranking"
	"recruitai/internal/storage"

	"go.uber.org/zap"
)

// RankCandidatesHandler scores the whole candidate pool against the request
// and writes each score through to the store.
// @Summary Rank candidates
// @Description Rank all candidates against job requirements
// @Tags rank
// @Accept json
// @Produce json
// @Param request body ranking.Request true "Job requirements"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /rank [post]
func (a *API) RankCandidatesHandler(w http.ResponseWriter, r *http.Request) {
	var req ranking.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	candidates, err := a.db.AllCandidates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	ranked := a.engine.Rank(candidates, req)

	// Write-through: scores are persisted as part of ranking, per candidate
	// and best-effort.
	persistErrs := ranking.ApplyScores(r.Context(), a.db, ranked)
	for _, pe := range persistErrs {
		a.logger.Warn("failed to persist match score",
			zap.String("candidate_id", pe.ID), zap.String("error", pe.Error))
	}

	response := map[string]interface{}{
		"message":    "Candidates ranked successfully",
		"jobId":      req.JobID,
		"candidates": ranked,
	}
	if len(persistErrs) > 0 {
		response["errors"] = persistErrs
	}
	writeJSON(w, http.StatusOK, response)
}

// TopCandidatesHandler returns candidates ordered by stored match score.
// @Summary Top candidates
// @Tags rank
// @Produce json
// @Param limit query int false "Limit" default(10)
// @Success 200 {object} map[string]interface{}
// @Router /rank/top [get]
func (a *API) TopCandidatesHandler(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	candidates, err := a.db.TopCandidates(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	if candidates == nil {
		candidates = []*storage.Candidate{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Top candidates retrieved successfully",
		"candidates": candidates,
	})
}

// CandidateRankingHandler returns one candidate with its stored score.
// @Summary Candidate ranking detail
// @Tags rank
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /rank/{id} [get]
func (a *API) CandidateRankingHandler(w http.ResponseWriter, r *http.Request) {
	candidate, err := a.db.GetCandidate(r.Context(), r.PathValue("id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Candidate ranking details retrieved successfully",
		"candidate": candidate,
	})
}
