package http

import (
	"net/http"
	"strings"

	"github.com/VictoriaMetrics/metrics"

	"github.com/dmitrijs2005/metastore/internal/auth"
)

var requestsTotal = metrics.NewCounter("metastore_http_requests_total")

// requireToken verifies the bearer token, bounds its minted lifetime by the
// configured maximum, and, for project-scoped endpoints, checks that the
// token was minted for the project named in the path.
func (s *HTTPServer) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		project, err := auth.GetProjectFromToken(token, s.jwtSecret, s.tokenMaxAge)
		if err != nil {
			s.logger.Warn(r.Context(), "rejected token", "error", err.Error())
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		if want := r.PathValue("project"); want != "" && want != project {
			http.Error(w, "token does not grant access to this project", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestsTotal.Inc()
		next.ServeHTTP(w, r)
	})
}
