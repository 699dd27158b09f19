package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Health check (for Railway, k8s, etc.)
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "OK",
			"message": "Backend running successfully",
		})
	})

	// Auth
	mux.HandleFunc("POST /api/auth/register", a.RegisterHandler)
	mux.HandleFunc("POST /api/auth/login", a.LoginHandler)

	// Candidates & resumes
	mux.HandleFunc("POST /api/resume/upload", a.requireAuth(a.UploadResumeHandler))
	mux.HandleFunc("GET /api/resume", a.requireAuth(a.ListCandidatesHandler))
	mux.HandleFunc("GET /api/resume/{id}", a.requireAuth(a.GetCandidateHandler))
	mux.HandleFunc("DELETE /api/resume/{id}", a.requireAuth(a.DeleteCandidateHandler))

	// Parsing pipeline
	mux.HandleFunc("POST /api/ai/parse/batch", a.requireAuth(a.BatchParseHandler))
	mux.HandleFunc("POST /api/ai/parse/{id}", a.requireAuth(a.ParseResumeHandler))

	// Ranking
	mux.HandleFunc("POST /api/rank", a.requireAuth(a.RankCandidatesHandler))
	mux.HandleFunc("GET /api/rank/top", a.requireAuth(a.TopCandidatesHandler))
	mux.HandleFunc("GET /api/rank/{id}", a.requireAuth(a.CandidateRankingHandler))

	// Certificate verification
	mux.HandleFunc("POST /api/verify/upload", a.requireAuth(a.UploadCertificateHandler))
	mux.HandleFunc("POST /api/verify/check", a.requireAuth(a.VerifyCertificateHandler))
	mux.HandleFunc("GET /api/verify/status/{id}", a.requireAuth(a.VerificationStatusHandler))
	mux.HandleFunc("GET /api/verify/details", a.requireAuth(a.VerificationDetailsHandler))

	// Dashboard
	mux.HandleFunc("GET /api/dashboard/stats", a.requireAuth(a.DashboardStatsHandler))

	return mux
}
