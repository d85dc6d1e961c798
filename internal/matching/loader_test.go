package matching

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSpecialists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "specialists.json")
	roster := `[
		{"name": "Dr. Rossi", "email": "rossi@example.com", "expertise": "anxiety", "schedule": "Mon-Wed 09:00-12:00"},
		{"name": "Dr. Verdi", "email": "verdi@example.com", "expertise": "trauma"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(roster), 0o644))

	specialists, err := LoadSpecialists(path)
	require.NoError(t, err)
	require.Len(t, specialists, 2)
	assert.Equal(t, "Dr. Rossi", specialists[0].Name)
	assert.Equal(t, "Mon-Wed 09:00-12:00", specialists[0].Schedule)
}

func TestLoadSpecialists_MissingFile(t *testing.T) {
	_, err := LoadSpecialists(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadSpecialists_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "specialists.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadSpecialists(path)
	assert.Error(t, err)
}

func TestDefaultSpecialists(t *testing.T) {
	roster := DefaultSpecialists()
	require.NotEmpty(t, roster)
	for _, sp := range roster {
		assert.NotEmpty(t, sp.Name)
		assert.NotEmpty(t, sp.Email)
		assert.NotEmpty(t, sp.Schedule)
	}
}
