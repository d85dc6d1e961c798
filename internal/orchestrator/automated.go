package orchestrator

import (
	"context"
	"fmt"

	"github.com/carebridge/intake-ai-platform/internal/appointment"
	"github.com/carebridge/intake-ai-platform/internal/schedule"
)

// RunAutomated schedules without a conversation: urgency partitioning, time
// band filtering, and slot selection run back to back over the draft's
// calendar, and the confirmed record is built directly. Nothing is persisted
// or emailed here; the caller finalizes once the patient confirms the
// booking. Missing time preferences default to morning.
func (o *Orchestrator) RunAutomated(ctx context.Context, draft appointment.Draft) (appointment.Appointment, error) {
	cal, ok := decodeAs[schedule.Calendar](draft["doctor_schedule"])
	if !ok {
		return appointment.Appointment{}, fmt.Errorf("orchestrator: draft has no doctor schedule")
	}

	urgent := IsUrgent(draft[appointment.FieldIsUrgent])
	filtered, dates := schedule.PartitionByUrgency(cal, urgent)
	draft.Set("filtered_schedule", filtered)
	draft.Set(appointment.FieldIsUrgent, urgent)

	band := draft.GetString(appointment.FieldTimePreference)
	if band == "" {
		band = schedule.BandMorning
	}

	slots, err := schedule.FilterByTimeBand(filtered, band)
	if err != nil {
		return appointment.Appointment{}, err
	}
	draft.Set(appointment.FieldTimePreference, band)
	draft.Set("available_slots", slots)

	o.logger.Info("automated scheduling",
		"urgent", urgent,
		"dates", len(dates),
		"band", band,
		"slots", len(slots),
	)

	selected, err := schedule.SelectSlot(slots, urgent, draft.GetString(appointment.FieldSymptoms))
	if err != nil {
		return appointment.Appointment{}, err
	}

	draft.Set(appointment.FieldSelectedNumber, selected.Number)
	draft.Set(appointment.FieldSelectedDate, selected.Date)
	draft.Set(appointment.FieldSelectedTime, selected.Time.String())

	return appointment.Build(draft, o.now())
}
