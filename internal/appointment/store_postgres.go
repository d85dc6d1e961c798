package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PostgresStore persists confirmed appointments to PostgreSQL for long-term
// history. A nil store (no DATABASE_URL configured) is a no-op.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a Postgres-backed store, or nil when no database
// is configured.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	if db == nil {
		return nil
	}
	return &PostgresStore{db: db}
}

// Save inserts the appointment row.
func (s *PostgresStore) Save(ctx context.Context, appt Appointment) error {
	if s == nil || s.db == nil {
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, doctor_name, doctor_email, patient_name, symptoms,
			selected_date, selected_time, patient_notes, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, uuid.New(), appt.DoctorName, appt.DoctorEmail, appt.PatientName, appt.Symptoms,
		appt.SelectedDate, appt.SelectedTime, appt.PatientNotes, appt.Status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("appointment: failed to insert: %w", err)
	}
	return nil
}

// LatestForPatient returns the most recent confirmed appointment for a
// patient, or nil when none exists.
func (s *PostgresStore) LatestForPatient(ctx context.Context, patientName string) (*Appointment, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}

	var appt Appointment
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT doctor_name, doctor_email, patient_name, symptoms,
			   selected_date, selected_time, COALESCE(patient_notes, ''), status, created_at
		FROM appointments
		WHERE patient_name = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, patientName).Scan(
		&appt.DoctorName, &appt.DoctorEmail, &appt.PatientName, &appt.Symptoms,
		&appt.SelectedDate, &appt.SelectedTime, &appt.PatientNotes, &appt.Status, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("appointment: failed to query: %w", err)
	}
	appt.CreatedAt = createdAt.Format(time.RFC3339)
	appt.ConversationComplete = true
	return &appt, nil
}
