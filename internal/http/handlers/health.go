package handlers

import (
	"net/http"
	"time"

	"github.com/crisischord/auth-be/internal/http/respond"
)

// HealthHandler reports service liveness.
type HealthHandler struct{}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"message":   "Disaster Management API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
