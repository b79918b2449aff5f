package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"f1grid/internal/container"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	container *container.Container
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(container *container.Container) *HealthHandler {
	return &HealthHandler{
		container: container,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Cache     string    `json:"cache"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Service   string    `json:"service"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	logger.Debug("Health check requested")

	cacheStatus := "disabled"
	if client := h.container.GetRedisClient(); client != nil {
		cacheStatus = "healthy"
		if err := client.Health(r.Context()); err != nil {
			logger.WithError(err).Warn("Cache health check failed")
			cacheStatus = "unhealthy"
		}
	}

	response := HealthResponse{
		Status:    "healthy",
		Cache:     cacheStatus,
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
		Service:   "f1grid",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.WithError(err).Error("Failed to encode health check response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
