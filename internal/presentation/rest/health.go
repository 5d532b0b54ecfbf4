package rest

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

const readinessTimeout = 2 * time.Second

// ReadinessCheck reports whether a dependency is usable.
type ReadinessCheck func(ctx context.Context) error

// HealthHandler provides HTTP health check endpoints for the bot scoring service.
type HealthHandler struct {
	checks    map[string]ReadinessCheck
	logger    *slog.Logger
	startTime time.Time
	service   string
}

// NewHealthHandler creates a new health check handler. Each named check runs on /readyz.
func NewHealthHandler(service string, checks map[string]ReadinessCheck, logger *slog.Logger) *HealthHandler {
	if checks == nil {
		checks = map[string]ReadinessCheck{}
	}
	return &HealthHandler{
		checks:    checks,
		logger:    logger,
		startTime: time.Now(),
		service:   service,
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Checks  map[string]string `json:"checks"`
	Status  string            `json:"status"`
	Service string            `json:"service"`
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.service,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Readyz handles readiness probe requests. Any failing check answers 503.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := ReadinessResponse{
		Checks:  make(map[string]string, len(names)),
		Status:  "ready",
		Service: h.service,
	}
	code := http.StatusOK

	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed",
				slog.String("check", name),
				slog.String("error", err.Error()),
			)
			resp.Checks[name] = err.Error()
			resp.Status = "not_ready"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	respondWithJSON(w, code, resp)
}
