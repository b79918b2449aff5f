package handler

import (
	"encoding/json"
	"net/http"

	"f1grid/internal/container"
)

// AdminHandler exposes operational endpoints. They are only honored outside
// production; in production they return 403.
type AdminHandler struct {
	container *container.Container
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(container *container.Container) *AdminHandler {
	return &AdminHandler{
		container: container,
	}
}

// PurgeCache handles POST /api/v1/cache/purge
func (h *AdminHandler) PurgeCache(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	cfg := h.container.GetConfig()

	if cfg.Environment == "production" {
		h.respondJSON(w, http.StatusForbidden, map[string]string{
			"error": "Cache purge is not available in production",
		})
		return
	}

	if err := h.container.Services.Teams.PurgeCache(r.Context()); err != nil {
		logger.WithError(err).Error("Cache purge failed")
		h.respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to purge cache",
		})
		return
	}

	logger.Info("Team snapshot cache purged")
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status": "purged",
	})
}

func (h *AdminHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
