package middleware

import (
	"net/http"
	"strings"
)

// CORSMiddleware applies a fixed CORS policy.  The dashboard is the only
// intended browser client, so the policy is origin-list based, not reflective.
type CORSMiddleware struct {
	allowedOrigins map[string]bool
	allowAll       bool
}

// NewCORSMiddleware constructs the middleware.  An empty list, or a list
// containing "*", allows every origin.
func NewCORSMiddleware(origins []string) *CORSMiddleware {
	m := &CORSMiddleware{allowedOrigins: map[string]bool{}}
	if len(origins) == 0 {
		m.allowAll = true
	}
	for _, o := range origins {
		if o == "*" {
			m.allowAll = true
		}
		m.allowedOrigins[strings.TrimSuffix(o, "/")] = true
	}
	return m
}

// Handler wraps next with CORS headers and preflight handling.
func (m *CORSMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (m.allowAll || m.allowedOrigins[origin]) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization, X-Request-ID")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
