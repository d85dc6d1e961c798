package orchestrator

import (
	"context"
	"fmt"

	"github.com/carebridge/intake-ai-platform/internal/appointment"
	"github.com/carebridge/intake-ai-platform/internal/schedule"
)

// Tool names exposed to the scheduling model.
const (
	ToolFilterByTimePreference = "filter_by_time_preference"
	ToolSelectBestAppointment  = "select_best_appointment"
	ToolUpdateAppointmentJSON  = "update_appointment_json"
	ToolFinalizeAppointment    = "finalize_appointment"
)

// ExecuteFunction dispatches one tool call against the draft and returns the
// JSON-shaped result to feed back to the model. Results always come back as a
// map; failures are reported under an "error" key rather than a Go error so
// the model can react to them. Filter and select results are also written
// into the draft so later calls can omit their inputs.
func (o *Orchestrator) ExecuteFunction(ctx context.Context, name string, args map[string]any, draft appointment.Draft) map[string]any {
	o.logger.Info("executing scheduling tool", "tool", name)

	switch name {
	case ToolFilterByTimePreference:
		return o.filterByTimePreference(args, draft)
	case ToolSelectBestAppointment:
		return o.selectBestAppointment(args, draft)
	case ToolUpdateAppointmentJSON:
		return updateAppointmentJSON(args, draft)
	case ToolFinalizeAppointment:
		return o.finalizeAppointment(ctx, draft)
	default:
		return map[string]any{"error": fmt.Sprintf("Unknown function: %s", name)}
	}
}

func (o *Orchestrator) filterByTimePreference(args map[string]any, draft appointment.Draft) map[string]any {
	band, _ := args["time_preference"].(string)

	source := args["filtered_schedule"]
	if source == nil {
		source = draft["filtered_schedule"]
	}
	cal, _ := decodeAs[schedule.Calendar](source)

	slots, err := schedule.FilterByTimeBand(cal, band)
	if err != nil {
		return map[string]any{"error": "Invalid time preference"}
	}

	draft.Set(appointment.FieldTimePreference, band)
	draft.Set("available_slots", slots)

	return map[string]any{
		"status":          "filtered",
		"time_preference": band,
		"available_slots": slots,
		"total_slots":     len(slots),
		"message":         fmt.Sprintf("Found %d available %s slots", len(slots), band),
	}
}

func (o *Orchestrator) selectBestAppointment(args map[string]any, draft appointment.Draft) map[string]any {
	source := args["available_slots"]
	if source == nil {
		source = draft["available_slots"]
	}
	slots, _ := decodeAs[map[int]schedule.NumberedSlot](source)

	urgent := IsUrgent(args["urgency"])
	symptoms, _ := args["symptoms"].(string)

	selected, err := schedule.SelectSlot(slots, urgent, symptoms)
	if err != nil {
		return map[string]any{"error": "No available slots"}
	}

	draft.Set(appointment.FieldSelectedNumber, selected.Number)
	draft.Set(appointment.FieldSelectedDate, selected.Date)
	draft.Set(appointment.FieldSelectedTime, selected.Time.String())

	return map[string]any{
		"status":               "selected",
		"selected_slot_number": selected.Number,
		"selected_date":        selected.Date,
		"selected_time":        selected.Time.String(),
		"message":              fmt.Sprintf("Selected appointment #%d on %s at %s", selected.Number, selected.Date, selected.Time),
	}
}

func updateAppointmentJSON(args map[string]any, draft appointment.Draft) map[string]any {
	field, _ := args["field"].(string)
	if field == "" {
		return map[string]any{"error": "Missing field name"}
	}
	draft.Set(field, args["value"])

	return map[string]any{
		"status":  "updated",
		"field":   field,
		"message": fmt.Sprintf("Updated %s in appointment JSON", field),
	}
}

func (o *Orchestrator) finalizeAppointment(ctx context.Context, draft appointment.Draft) map[string]any {
	result, err := o.finalizer.Finalize(ctx, draft, o.now())
	if err != nil {
		o.logger.Error("finalization failed", "error", err)
		return map[string]any{"error": err.Error()}
	}
	return map[string]any{
		"final_appointment": result.FinalAppointment,
		"message":           result.Message,
	}
}
