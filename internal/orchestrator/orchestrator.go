// Package orchestrator drives appointment scheduling over a matched
// specialist's calendar, either as a model-facing tool surface or as a fully
// automated pipeline.
package orchestrator

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/carebridge/intake-ai-platform/internal/appointment"
	"github.com/carebridge/intake-ai-platform/internal/matching"
	"github.com/carebridge/intake-ai-platform/internal/schedule"
	"github.com/carebridge/intake-ai-platform/pkg/logging"
)

// Orchestrator executes scheduling steps against an appointment draft.
type Orchestrator struct {
	finalizer *appointment.Finalizer
	logger    *logging.Logger
	now       func() time.Time
}

// New wires an orchestrator around a finalizer.
func New(finalizer *appointment.Finalizer, logger *logging.Logger) *Orchestrator {
	if finalizer == nil {
		panic("orchestrator: finalizer cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Orchestrator{
		finalizer: finalizer,
		logger:    logger,
		now:       time.Now,
	}
}

// IsUrgent normalizes the urgency value carried in drafts and tool
// arguments: booleans pass through, and of the urgency-level strings only
// "urgent" counts as urgent.
func IsUrgent(v any) bool {
	switch u := v.(type) {
	case bool:
		return u
	case string:
		return strings.EqualFold(strings.TrimSpace(u), "urgent")
	default:
		return false
	}
}

// InitialDraft seeds a scheduling draft from a completed match report and the
// specialist's generated calendar.
func InitialDraft(report *matching.Report, patientName string, cal schedule.Calendar) appointment.Draft {
	return appointment.Draft{
		appointment.FieldDoctorName:  report.Specialist.Name,
		appointment.FieldDoctorEmail: report.Specialist.Email,
		appointment.FieldPatientName: patientName,
		appointment.FieldSymptoms:    strings.Join(report.Symptoms, ", "),
		"doctor_schedule":            cal,
		appointment.FieldIsUrgent:    report.UrgencyLevel,
	}
}

// decodeAs round-trips a loosely typed value (raw tool argument or a draft
// field that survived a JSON hop) into its concrete type.
func decodeAs[T any](v any) (T, bool) {
	var out T
	if v == nil {
		return out, false
	}
	data, err := json.Marshal(v)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false
	}
	return out, true
}
