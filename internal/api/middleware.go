package api

import (
	"net/http"
	"strings"
)

// requireAuth enforces bearer-token authentication. When no JWT secret is
// configured the check is skipped so the API can run locally without accounts.
func (a *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if a.auth == nil || !a.auth.Enabled() {
			next(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			writeMessage(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		if _, err := a.auth.VerifyToken(token); err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next(w, r)
	}
}
