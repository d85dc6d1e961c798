package intake

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/intake-ai-platform/internal/appointment"
	"github.com/carebridge/intake-ai-platform/internal/matching"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client, nil), mr
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	session := NewSession(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	session.State = StateAskingSymptoms
	session.Record.PatientName = "Alice Brown"
	session.Urgent = true
	session.Band = "morning"
	session.Report = &matching.Report{UrgencyLevel: "high"}
	session.Draft = appointment.Draft{appointment.FieldDoctorName: "Dr. Rossi"}

	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Load(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, StateAskingSymptoms, loaded.State)
	assert.Equal(t, "Alice Brown", loaded.Record.PatientName)
	assert.True(t, loaded.Urgent)
	assert.Equal(t, "morning", loaded.Band)
	require.NotNil(t, loaded.Report)
	assert.Equal(t, "high", loaded.Report.UrgencyLevel)
	assert.Equal(t, "Dr. Rossi", loaded.Draft.GetString(appointment.FieldDoctorName))
}

func TestSessionStoreLoad_Unknown(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStoreSave_SetsTTL(t *testing.T) {
	store, mr := newTestStore(t)

	session := NewSession(time.Now())
	require.NoError(t, store.Save(context.Background(), session))

	mr.FastForward(sessionTTL + time.Minute)
	_, err := store.Load(context.Background(), session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	session := NewSession(time.Now())
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, session.ID))

	_, err := store.Load(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.NoError(t, store.Delete(ctx, "already-gone"))
}
