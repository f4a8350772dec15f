package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// SourcePinger checks that the employee source is reachable.
type SourcePinger interface {
	Ping(ctx context.Context) error
}

// LoadState reports whether the employee list has been loaded.
type LoadState interface {
	Loaded() bool
}

type HealthChecker struct {
	source  SourcePinger
	state   LoadState
	timeout time.Duration
	log     *slog.Logger
}

func NewHealthChecker(source SourcePinger, state LoadState, log *slog.Logger) *HealthChecker {
	pingTO := 5
	return &HealthChecker{
		source:  source,
		state:   state,
		timeout: time.Duration(pingTO) * time.Second,
		log:     log,
	}
}

func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.log.DebugContext(req.Context(), "Performing health checks...")

	var err error
	status := make(map[string]string)
	overallStatus := http.StatusOK

	if h.state.Loaded() {
		status["employees"] = "ok"
	} else {
		status["employees"] = "not_loaded"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(req.Context(), "Health check failed: employee list is not loaded")
	}

	ctx, cancel := context.WithTimeout(req.Context(), h.timeout)
	defer cancel()

	if err = h.source.Ping(ctx); err != nil {
		status["source"] = "unreachable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(req.Context(), "Health check failed: employee source unreachable", "error", err)
	} else {
		status["source"] = "ok"
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if err = json.NewEncoder(writer).Encode(status); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write health check response", "error", err)
	}

	h.log.DebugContext(req.Context(), "Health checks completed", "status", overallStatus)
}
