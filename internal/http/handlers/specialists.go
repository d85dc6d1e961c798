package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/carebridge/intake-ai-platform/internal/matching"
	"github.com/carebridge/intake-ai-platform/pkg/logging"
)

// SpecialistsHandler serves the loaded specialist roster.
type SpecialistsHandler struct {
	directory *matching.Directory
	logger    *logging.Logger
}

// NewSpecialistsHandler creates a specialists handler.
func NewSpecialistsHandler(directory *matching.Directory, logger *logging.Logger) *SpecialistsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &SpecialistsHandler{directory: directory, logger: logger}
}

// List handles GET /specialists.
func (h *SpecialistsHandler) List(w http.ResponseWriter, r *http.Request) {
	specialists := h.directory.List(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"specialists": specialists,
		"count":       len(specialists),
	}); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}

// HealthCheck handles GET /health.
func HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "intake-api",
	})
}
