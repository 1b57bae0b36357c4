package handler

import (
	"net/http"

	"github.com/mcoot/pairings-web/internal/api/apierr"
	"github.com/mcoot/pairings-web/internal/api/response"
)

// HealthHandler reports whether the pairing service answers
type HealthHandler struct {
	backend Backend
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(backend Backend) *HealthHandler {
	return &HealthHandler{backend: backend}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.Ping(r.Context()); err != nil {
		response.JSON(w, apierr.Status(err), response.Health{Status: "degraded", Backend: "unavailable"})
		return
	}
	response.JSON(w, http.StatusOK, response.Health{Status: "ok", Backend: "ok"})
}
