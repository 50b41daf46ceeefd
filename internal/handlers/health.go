package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"keiko-chat/internal/contextutil"
)

// Pinger checks connectivity to an external dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	cache              Pinger
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. cache may be nil when
// response caching is disabled.
func NewHealthHandler(cache Pinger) *HealthHandler {
	return &HealthHandler{
		cache:              cache,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "degraded"
	Status string `json:"status"`

	// Service name, for multi-service deployments
	Service string `json:"service"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`
}

// ServeHTTP handles HTTP requests for health checks. The cache is a
// fail-open dependency, so its unavailability degrades the status without
// making the service unhealthy.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	status := "healthy"
	checks := make(map[string]string)

	if h.cache == nil {
		checks["cache"] = "disabled"
	} else if err := h.cache.Ping(checkCtx); err != nil {
		logger.WarnContext(ctx, "cache health check failed", "error", err)
		checks["cache"] = "error"
		status = "degraded"
	} else {
		checks["cache"] = "ok"
	}

	response := HealthResponse{
		Status:    status,
		Service:   "chat-service",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}
