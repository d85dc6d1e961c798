// Package handlers wires HTTP requests to the intake, matching and
// scheduling services.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carebridge/intake-ai-platform/internal/analyzer"
	"github.com/carebridge/intake-ai-platform/internal/appointment"
	"github.com/carebridge/intake-ai-platform/internal/intake"
	"github.com/carebridge/intake-ai-platform/internal/matching"
	"github.com/carebridge/intake-ai-platform/internal/observability/metrics"
	"github.com/carebridge/intake-ai-platform/internal/orchestrator"
	"github.com/carebridge/intake-ai-platform/internal/schedule"
	"github.com/carebridge/intake-ai-platform/pkg/logging"
)

// exitKeywords end a conversation immediately when sent as a whole message.
var exitKeywords = map[string]struct{}{
	"quit":   {},
	"exit":   {},
	"cancel": {},
}

// IntakeConfig holds the collaborators the intake handler needs.
type IntakeConfig struct {
	Sessions     *intake.SessionStore
	Analyzer     analyzer.Analyzer
	Matcher      *matching.Service
	Orchestrator *orchestrator.Orchestrator
	Finalizer    *appointment.Finalizer
	Metrics      *metrics.IntakeMetrics
	Logger       *logging.Logger
	HorizonWeeks int
	SlotMinutes  int

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// IntakeHandler serves the intake conversation and scheduling endpoints.
type IntakeHandler struct {
	sessions     *intake.SessionStore
	analyzer     analyzer.Analyzer
	matcher      *matching.Service
	orch         *orchestrator.Orchestrator
	finalizer    *appointment.Finalizer
	metrics      *metrics.IntakeMetrics
	logger       *logging.Logger
	horizonWeeks int
	slotMinutes  int
	now          func() time.Time
}

// NewIntakeHandler creates an intake handler.
func NewIntakeHandler(cfg IntakeConfig) *IntakeHandler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &IntakeHandler{
		sessions:     cfg.Sessions,
		analyzer:     cfg.Analyzer,
		matcher:      cfg.Matcher,
		orch:         cfg.Orchestrator,
		finalizer:    cfg.Finalizer,
		metrics:      cfg.Metrics,
		logger:       logger,
		horizonWeeks: cfg.HorizonWeeks,
		slotMinutes:  cfg.SlotMinutes,
		now:          now,
	}
}

type sessionResponse struct {
	SessionID string           `json:"session_id"`
	State     intake.State     `json:"state"`
	Response  string           `json:"response"`
	Report    *matching.Report `json:"report,omitempty"`
}

// Start handles POST /intake/sessions. It opens a session and returns the
// greeting.
func (h *IntakeHandler) Start(w http.ResponseWriter, r *http.Request) {
	session := intake.NewSession(h.now())
	result := intake.Transition(r.Context(), session.State, session.Record, "", h.analyzer.ExtractPatientFields)
	session.State = result.State
	session.UpdatedAt = h.now()

	if err := h.sessions.Save(r.Context(), session); err != nil {
		h.logger.Error("failed to save new session", "error", err)
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveSessionStarted()
	h.writeJSON(w, http.StatusCreated, sessionResponse{
		SessionID: session.ID,
		State:     session.State,
		Response:  result.Response,
	})
}

type messageRequest struct {
	Message string `json:"message"`
}

// Message handles POST /intake/sessions/{sessionID}/messages. One message
// advances the conversation one state; the message that completes the intake
// also runs analysis and specialist matching before returning.
func (h *IntakeHandler) Message(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode message request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.sessions.Load(r.Context(), sessionID)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	if _, ok := exitKeywords[strings.ToLower(strings.TrimSpace(req.Message))]; ok {
		if err := h.sessions.Delete(r.Context(), sessionID); err != nil {
			h.logger.Error("failed to delete cancelled session", "error", err)
		}
		h.writeJSON(w, http.StatusOK, sessionResponse{
			SessionID: sessionID,
			State:     "cancelled",
			Response:  "Appointment scheduling cancelled.",
		})
		return
	}

	h.metrics.ObserveMessage(string(session.State))

	result := intake.Transition(r.Context(), session.State, session.Record, req.Message, h.analyzer.ExtractPatientFields)
	session.State = result.State
	session.Record = result.Record
	session.UpdatedAt = h.now()

	if result.State == intake.StateProcessing {
		if err := h.process(r, session); err != nil {
			h.logger.Error("intake processing failed", "error", err, "session_id", session.ID)
			http.Error(w, "Failed to process intake", http.StatusInternalServerError)
			return
		}
	}

	if err := h.sessions.Save(r.Context(), session); err != nil {
		h.logger.Error("failed to save session", "error", err, "session_id", session.ID)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: session.ID,
		State:     session.State,
		Response:  result.Response,
		Report:    session.Report,
	})
}

// process runs the analyze-and-match step over the completed record, expands
// the winning specialist's calendar, and seeds the scheduling draft.
func (h *IntakeHandler) process(r *http.Request, session *intake.Session) error {
	if err := session.Record.RequireComplete(); err != nil {
		return err
	}

	started := h.now()
	report, err := h.matcher.Process(r.Context(), matching.PatientDetails{
		Name:            session.Record.PatientName,
		Age:             session.Record.PatientAge,
		Address:         session.Record.PatientAddress,
		Gender:          session.Record.PatientGender,
		Symptoms:        session.Record.Symptoms,
		ClinicalHistory: session.Record.ClinicalHistory,
		Context:         session.Record.Context,
	})
	if err != nil {
		h.metrics.ObservePipeline("failed", h.now().Sub(started).Seconds())
		return err
	}

	rules, err := schedule.ParseSchedule(report.Specialist.Schedule)
	if err != nil {
		h.metrics.ObservePipeline("failed", h.now().Sub(started).Seconds())
		return err
	}
	cal := schedule.BuildCalendar(rules, h.now(), h.horizonWeeks, h.slotMinutes)

	session.Report = report
	session.Urgent = orchestrator.IsUrgent(report.UrgencyLevel)
	session.Draft = orchestrator.InitialDraft(report, session.Record.PatientName, cal)
	session.State = intake.StateCompleted

	h.metrics.ObservePipeline("matched", h.now().Sub(started).Seconds())
	return nil
}

type scheduleRequest struct {
	TimePreference string `json:"time_preference"`
	IsUrgent       *bool  `json:"is_urgent"`
}

type scheduleResponse struct {
	SessionID   string                  `json:"session_id"`
	Appointment appointment.Appointment `json:"appointment"`
	Urgent      bool                    `json:"urgent"`
	Message     string                  `json:"message"`
}

// Schedule handles POST /intake/sessions/{sessionID}/schedule: the automated
// urgency-filter-select pipeline over the matched specialist's calendar. An
// explicit is_urgent in the body overrides the analyzed urgency level. The
// booking is prepared but not persisted or emailed until Confirm.
func (h *IntakeHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode schedule request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.sessions.Load(r.Context(), sessionID)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}
	if session.Report == nil {
		http.Error(w, "Intake is not complete", http.StatusConflict)
		return
	}

	if req.TimePreference != "" {
		session.Draft.Set(appointment.FieldTimePreference, req.TimePreference)
	}
	if req.IsUrgent != nil {
		session.Draft.Set(appointment.FieldIsUrgent, *req.IsUrgent)
	}
	session.Urgent = orchestrator.IsUrgent(session.Draft[appointment.FieldIsUrgent])

	appt, err := h.orch.RunAutomated(r.Context(), session.Draft)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrUnknownTimeBand):
			http.Error(w, "Invalid time preference", http.StatusBadRequest)
		case errors.Is(err, schedule.ErrNoAvailableSlots):
			http.Error(w, "No available slots", http.StatusConflict)
		default:
			h.logger.Error("automated scheduling failed", "error", err, "session_id", session.ID)
			http.Error(w, "Failed to schedule appointment", http.StatusInternalServerError)
		}
		return
	}

	// RunAutomated normalized the applied band into the draft.
	session.Band = session.Draft.GetString(appointment.FieldTimePreference)
	session.UpdatedAt = h.now()
	if err := h.sessions.Save(r.Context(), session); err != nil {
		h.logger.Error("failed to save session", "error", err, "session_id", session.ID)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, scheduleResponse{
		SessionID:   session.ID,
		Appointment: appt,
		Urgent:      session.Urgent,
		Message:     "Booking prepared, confirm to finalize",
	})
}

// Confirm handles POST /intake/sessions/{sessionID}/confirm: it persists the
// prepared booking and emails the specialist. Confirming again repeats both.
func (h *IntakeHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.sessions.Load(r.Context(), sessionID)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	result, err := h.finalizer.Finalize(r.Context(), session.Draft, h.now())
	if err != nil {
		if errors.Is(err, appointment.ErrNotConfirmed) {
			http.Error(w, "No appointment has been scheduled", http.StatusConflict)
			return
		}
		h.metrics.ObserveAppointment("failed")
		h.logger.Error("finalization failed", "error", err, "session_id", session.ID)
		http.Error(w, "Failed to confirm appointment", http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveAppointment("confirmed")
	h.writeJSON(w, http.StatusOK, result)
}

func (h *IntakeHandler) respondSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, intake.ErrSessionNotFound) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	h.logger.Error("failed to load session", "error", err)
	http.Error(w, "Failed to load session", http.StatusInternalServerError)
}

func (h *IntakeHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
