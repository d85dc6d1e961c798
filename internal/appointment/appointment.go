// Package appointment turns a scheduling draft into a confirmed appointment
// record and persists it.
package appointment

import (
	"errors"
	"time"
)

// ErrNotConfirmed indicates finalization was attempted before a slot was
// selected into the draft.
var ErrNotConfirmed = errors.New("appointment: no slot selected")

// Draft is the appointment-in-progress. Fields accumulate under free-form
// keys while the scheduling conversation runs; only the keys listed in
// Finalize survive into the confirmed record.
type Draft map[string]any

// Draft keys written by the scheduling pipeline.
const (
	FieldDoctorName     = "doctor_name"
	FieldDoctorEmail    = "doctor_email"
	FieldPatientName    = "patient_name"
	FieldSymptoms       = "symptoms"
	FieldSelectedDate   = "selected_date"
	FieldSelectedTime   = "selected_time"
	FieldSelectedNumber = "selected_slot_number"
	FieldPatientNotes   = "patient_notes"
	FieldIsUrgent       = "is_urgent"
	FieldTimePreference = "time_preference"
)

// Set writes one field into the draft.
func (d Draft) Set(field string, value any) {
	d[field] = value
}

// GetString reads a field as a string, returning "" for missing or
// non-string values.
func (d Draft) GetString(field string) string {
	if v, ok := d[field].(string); ok {
		return v
	}
	return ""
}

// Appointment is the confirmed booking, reduced to the essential fields.
type Appointment struct {
	DoctorName           string `json:"doctor_name"`
	DoctorEmail          string `json:"doctor_email"`
	PatientName          string `json:"patient_name"`
	Symptoms             string `json:"symptoms"`
	SelectedDate         string `json:"selected_date"`
	SelectedTime         string `json:"selected_time"`
	PatientNotes         string `json:"patient_notes"`
	Status               string `json:"status"`
	CreatedAt            string `json:"created_at"`
	ConversationComplete bool   `json:"conversation_complete"`
}

// Build reduces a draft to the confirmed record. Status is always
// "confirmed" and CreatedAt is the finalization instant in RFC 3339 form.
// Draft fields outside the essential set are dropped.
func Build(draft Draft, now time.Time) (Appointment, error) {
	if draft.GetString(FieldSelectedDate) == "" || draft.GetString(FieldSelectedTime) == "" {
		return Appointment{}, ErrNotConfirmed
	}
	return Appointment{
		DoctorName:           draft.GetString(FieldDoctorName),
		DoctorEmail:          draft.GetString(FieldDoctorEmail),
		PatientName:          draft.GetString(FieldPatientName),
		Symptoms:             draft.GetString(FieldSymptoms),
		SelectedDate:         draft.GetString(FieldSelectedDate),
		SelectedTime:         draft.GetString(FieldSelectedTime),
		PatientNotes:         draft.GetString(FieldPatientNotes),
		Status:               "confirmed",
		CreatedAt:            now.Format(time.RFC3339),
		ConversationComplete: true,
	}, nil
}
