package http

import (
	"context"
	"net/http"
	"time"

	"rental-frontend/internal/domain"
	"rental-frontend/internal/security"
)

const readyTimeout = 5 * time.Second

// StatusHandler answers liveness and readiness checks
type StatusHandler struct {
	tokens  security.TokenSource
	timeout time.Duration
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(tokens security.TokenSource) *StatusHandler {
	return &StatusHandler{tokens: tokens, timeout: readyTimeout}
}

// Live handles GET /health/live. It never touches the upstreams.
func (s *StatusHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /health/ready: the process is ready once a bearer token
// can be obtained for every upstream within the readiness timeout. Cached tokens
// make this free.
func (s *StatusHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	for _, api := range []domain.APIIdentity{domain.ContractsAPI, domain.CatalogsAPI} {
		if _, err := s.tokens.Token(ctx, api); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"reason": string(api) + " api authentication failed",
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
