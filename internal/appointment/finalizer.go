package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/carebridge/intake-ai-platform/internal/notify"
	"github.com/carebridge/intake-ai-platform/pkg/logging"
)

// Result is what finalization hands back to the caller.
type Result struct {
	FinalAppointment Appointment `json:"final_appointment"`
	Message          string      `json:"message"`
}

// Finalizer confirms a draft: it builds the record, persists it to every
// configured store, and emails the specialist. Finalizing the same draft
// twice repeats all side effects.
type Finalizer struct {
	stores []Store
	emails notify.EmailSender
	logger *logging.Logger
}

// NewFinalizer wires a finalizer. Nil stores are skipped so an unconfigured
// Postgres store can be passed straight through.
func NewFinalizer(emails notify.EmailSender, logger *logging.Logger, stores ...Store) *Finalizer {
	if emails == nil {
		emails = notify.NewStubEmailSender(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	kept := make([]Store, 0, len(stores))
	for _, st := range stores {
		if st == nil {
			continue
		}
		if ps, ok := st.(*PostgresStore); ok && ps == nil {
			continue
		}
		kept = append(kept, st)
	}
	return &Finalizer{stores: kept, emails: emails, logger: logger}
}

// Finalize confirms the draft at the given instant. Persistence failures
// abort finalization; an email failure is logged but does not unconfirm an
// already-persisted appointment.
func (f *Finalizer) Finalize(ctx context.Context, draft Draft, now time.Time) (Result, error) {
	appt, err := Build(draft, now)
	if err != nil {
		return Result{}, err
	}

	for _, st := range f.stores {
		if err := st.Save(ctx, appt); err != nil {
			return Result{}, err
		}
	}

	if err := f.emails.Send(ctx, ConfirmationEmail(appt)); err != nil {
		f.logger.Error("confirmation email failed", "error", err, "doctor", appt.DoctorName)
	}

	f.logger.Info("appointment finalized",
		"doctor", appt.DoctorName,
		"patient", appt.PatientName,
		"date", appt.SelectedDate,
		"time", appt.SelectedTime,
	)

	return Result{
		FinalAppointment: appt,
		Message:          "Appointment confirmed and finalized",
	}, nil
}

// ConfirmationEmail renders the specialist-facing confirmation message for a
// confirmed appointment.
func ConfirmationEmail(appt Appointment) notify.EmailMessage {
	body := fmt.Sprintf(
		"A new appointment has been confirmed.\n\n"+
			"Patient: %s\n"+
			"Date: %s\n"+
			"Time: %s\n"+
			"Reported symptoms: %s\n",
		appt.PatientName, appt.SelectedDate, appt.SelectedTime, appt.Symptoms,
	)
	if appt.PatientNotes != "" {
		body += fmt.Sprintf("Notes: %s\n", appt.PatientNotes)
	}
	return notify.EmailMessage{
		To:      appt.DoctorEmail,
		ToName:  appt.DoctorName,
		Subject: fmt.Sprintf("New Appointment Confirmation - %s", appt.PatientName),
		Body:    body,
	}
}
