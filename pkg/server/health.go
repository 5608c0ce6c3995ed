package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"relaykit/courier/pkg/upstream"
)

// readinessTimeout bounds the credential resolution performed by the
// readiness probe so a stuck secrets backend cannot hang the prober.
const readinessTimeout = 2 * time.Second

// HealthHandler handles health check requests for liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP implements http.Handler for liveness checks. It always
// reports ok: the process being able to answer is the check.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// ReadyHandler handles readiness check requests.
//
// The relay is ready when the upstream credential is resolvable: a
// deployment with a missing or unreadable API key accepts traffic but
// masks every request, so readiness is the place that surfaces it.
type ReadyHandler struct {
	credentials upstream.CredentialSource
}

// NewReadyHandler creates a new readiness check handler.
func NewReadyHandler(credentials upstream.CredentialSource) *ReadyHandler {
	return &ReadyHandler{credentials: credentials}
}

// ServeHTTP implements http.Handler for readiness checks. The resolved
// credential is discarded immediately; only resolvability is reported.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	isReady := true
	if h.credentials == nil {
		isReady = false
	} else if credential, err := h.credentials.Credential(ctx); err != nil || credential == "" {
		if err != nil {
			slog.WarnContext(r.Context(), "readiness probe failed to resolve credential", "error", err)
		}
		isReady = false
	}

	status := "ready"
	statusCode := http.StatusOK
	if !isReady {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
