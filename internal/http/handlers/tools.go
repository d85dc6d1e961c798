package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/carebridge/intake-ai-platform/internal/intake"
	"github.com/carebridge/intake-ai-platform/internal/orchestrator"
	"github.com/carebridge/intake-ai-platform/pkg/logging"
)

// ToolsHandler exposes the scheduling tool surface over HTTP so a
// conversation driver outside this process can execute tool calls against a
// session's draft.
type ToolsHandler struct {
	sessions *intake.SessionStore
	orch     *orchestrator.Orchestrator
	logger   *logging.Logger
	now      func() time.Time
}

// NewToolsHandler creates a tools handler.
func NewToolsHandler(sessions *intake.SessionStore, orch *orchestrator.Orchestrator, logger *logging.Logger) *ToolsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ToolsHandler{
		sessions: sessions,
		orch:     orch,
		logger:   logger,
		now:      time.Now,
	}
}

type executeRequest struct {
	SessionID string         `json:"session_id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Execute handles POST /tools/execute. The result mirrors what the tool
// would feed back to the scheduling model: failures ride in an "error" field
// with a 200 status, so the driver can relay them verbatim.
func (h *ToolsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode tool request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Missing tool name", http.StatusBadRequest)
		return
	}

	session, err := h.sessions.Load(r.Context(), req.SessionID)
	if err != nil {
		if err == intake.ErrSessionNotFound {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load session", "error", err)
		http.Error(w, "Failed to load session", http.StatusInternalServerError)
		return
	}

	result := h.orch.ExecuteFunction(r.Context(), req.Name, req.Arguments, session.Draft)

	session.UpdatedAt = h.now()
	if err := h.sessions.Save(r.Context(), session); err != nil {
		h.logger.Error("failed to save session", "error", err, "session_id", session.ID)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
