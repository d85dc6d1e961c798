package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Store persists confirmed appointments.
type Store interface {
	Save(ctx context.Context, appt Appointment) error
}

// FileStore writes the confirmed appointment as indented JSON to a fixed
// path, replacing any previous record.
type FileStore struct {
	path string
}

// NewFileStore creates a file store. The default path is
// final_appointment.json in the working directory.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = "final_appointment.json"
	}
	return &FileStore{path: path}
}

// Save writes the record to disk.
func (s *FileStore) Save(_ context.Context, appt Appointment) error {
	data, err := json.MarshalIndent(appt, "", "  ")
	if err != nil {
		return fmt.Errorf("appointment: marshal record: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("appointment: write %s: %w", s.path, err)
	}
	return nil
}
