// Package http provides the ambient HTTP surface of the service: health check endpoints,
// metrics collection and the middleware chain wrapped around the news routes.
package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`            // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"` // Optional status message
	Details map[string]any `json:"details,omitempty"` // Optional additional details
}

// Pinger is the storage connectivity check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StateReporter reports a circuit breaker state ("closed", "half-open", "open").
type StateReporter interface {
	State() string
}

// HealthHandler handles health check endpoint requests.
// It pings the storage engine and reports connection pool and circuit breaker state.
type HealthHandler struct {
	Storage Pinger
	// DB, when set, adds relational connection pool statistics.
	DB      *sql.DB
	Breaker StateReporter
	Version string
	// Engine names the storage engine in the response ("mongo" or "postgres").
	Engine string
}

// ServeHTTP performs health checks and returns the application health status.
// Returns 200 OK if healthy, or 503 Service Unavailable if any check fails.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	allHealthy := true

	storageCheck := h.checkStorage(ctx)
	checks["storage"] = storageCheck
	if storageCheck.Status == "unhealthy" {
		allHealthy = false
	}

	// An open breaker is a warning: the storage may have recovered already.
	if h.Breaker != nil {
		checks["circuit_breaker"] = h.checkBreaker()
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Default().Error("health: failed to encode response", slog.Any("error", err))
	}
}

func (h *HealthHandler) checkStorage(ctx context.Context) CheckStatus {
	if h.Storage == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	if err := h.Storage.Ping(ctx); err != nil {
		// 詳細はログのみ
		slog.Default().Warn("health: storage ping failed", slog.Any("error", err))
		return CheckStatus{Status: "unhealthy", Message: "storage unreachable"}
	}

	details := map[string]any{}
	if h.Engine != "" {
		details["engine"] = h.Engine
	}
	if h.DB == nil {
		return CheckStatus{Status: "healthy", Details: details}
	}

	stats := h.DB.Stats()
	details["max_open_connections"] = stats.MaxOpenConnections
	details["open_connections"] = stats.OpenConnections
	details["in_use"] = stats.InUse
	details["idle"] = stats.Idle
	details["wait_count"] = stats.WaitCount
	details["wait_duration_ms"] = stats.WaitDuration.Milliseconds()

	// Guard against zero division when MaxOpenConnections is 0 (unlimited)
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool max connections not configured",
			Details: details,
		}
	}

	utilizationPercent := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilizationPercent
	if utilizationPercent >= 80.0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}

	return CheckStatus{Status: "healthy", Details: details}
}

func (h *HealthHandler) checkBreaker() CheckStatus {
	state := h.Breaker.State()
	check := CheckStatus{Status: "healthy", Details: map[string]any{"state": state}}
	if state != "closed" {
		check.Status = "degraded"
		check.Message = "storage circuit breaker is " + state
	}
	return check
}

// ReadyHandler handles Kubernetes readiness check requests.
// It checks that the storage engine is reachable.
type ReadyHandler struct {
	Storage Pinger
}

// ServeHTTP returns 200 OK if ready, or 503 Service Unavailable if the storage is not ready.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Storage == nil {
		http.Error(w, "storage not configured", http.StatusServiceUnavailable)
		return
	}

	if err := h.Storage.Ping(ctx); err != nil {
		http.Error(w, "storage not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler handles Kubernetes liveness check requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process is able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
