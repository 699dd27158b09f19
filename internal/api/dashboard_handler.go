package api

import (
	"net/http"
	"time"

	"recruitai/internal/storage"

	"go.uber.org/zap"
)

// DashboardStatsHandler aggregates counts, verification rate, top candidates
// and the weekly upload trend.
// @Summary Dashboard statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /dashboard/stats [get]
func (a *API) DashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := a.db.CountCandidates(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	parsed, err := a.db.CountByStatus(ctx, storage.StatusParsed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	verified, err := a.db.CountVerified(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	verificationRate := 0
	if total > 0 {
		verificationRate = (verified*100 + total/2) / total
	}

	recent, err := a.db.CountUploadedSince(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	avgScore, err := a.db.AverageMatchScore(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	top, err := a.db.TopCandidates(ctx, 5)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	if top == nil {
		top = []*storage.Candidate{}
	}

	trend, err := a.db.WeeklyUploadCounts(ctx, 4)
	if err != nil {
		a.logger.Warn("trend query failed", zap.Error(err))
		trend = []storage.WeeklyCount{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stats": map[string]int{
			"totalCandidates":    total,
			"parsedCandidates":   parsed,
			"verifiedCandidates": verified,
			"verificationRate":   verificationRate,
			"recentCandidates":   recent,
			"avgMatchScore":      avgScore,
		},
		"trendData":     trend,
		"topCandidates": top,
	})
}
