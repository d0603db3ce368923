package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/bkbadhon/fulus-backend/database"
)

// ReadinessGate rejects every request with 503 while the database is not
// reachable. This replaces the old module-level connected flag with a health
// check evaluated per request.
func ReadinessGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Liveness and scrape endpoints stay reachable while the DB is down.
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := database.Healthy(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"success": false,
				"message": "DB not connected",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
