package handlers

import (
	"context"
	"net/http"
	"time"
)

// ReadinessChecker reports whether a backing dependency can serve traffic.
type ReadinessChecker func(ctx context.Context) error

// HealthHandlers exposes liveness and readiness probes.
type HealthHandlers struct {
	checks map[string]ReadinessChecker
}

// NewHealthHandlers constructs health handlers with optional named
// readiness checks.
func NewHealthHandlers(checks map[string]ReadinessChecker) *HealthHandlers {
	if checks == nil {
		checks = map[string]ReadinessChecker{}
	}
	return &HealthHandlers{checks: checks}
}

// Healthz reports process liveness.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz runs every registered readiness check and reports per-check status.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if check == nil {
			continue
		}
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	body := map[string]any{"status": "ok", "checks": results}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	writeJSONResponse(w, status, body)
}
