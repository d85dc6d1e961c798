package appointment

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final_appointment.json")
	store := NewFileStore(path)

	appt := Appointment{
		DoctorName:           "Dr. Rossi",
		DoctorEmail:          "rossi@example.com",
		PatientName:          "Alice Brown",
		SelectedDate:         "2026-01-07",
		SelectedTime:         "14:00",
		Status:               "confirmed",
		CreatedAt:            "2026-01-05T10:30:00Z",
		ConversationComplete: true,
	}
	require.NoError(t, store.Save(context.Background(), appt))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Indented output, decodable back into the same record.
	assert.True(t, strings.Contains(string(data), "\n  \"doctor_name\""))

	var got Appointment
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, appt, got)
}

func TestFileStoreSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final_appointment.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(context.Background(), Appointment{PatientName: "First", SelectedDate: "2026-01-07", SelectedTime: "09:00"}))
	require.NoError(t, store.Save(context.Background(), Appointment{PatientName: "Second", SelectedDate: "2026-01-08", SelectedTime: "10:30"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Appointment
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Second", got.PatientName)
}

func TestNewFileStore_DefaultPath(t *testing.T) {
	store := NewFileStore("")
	assert.Equal(t, "final_appointment.json", store.path)
}
