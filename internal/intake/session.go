package intake

import (
	"time"

	"github.com/google/uuid"

	"github.com/carebridge/intake-ai-platform/internal/appointment"
	"github.com/carebridge/intake-ai-platform/internal/matching"
)

// Session is everything the service remembers about one patient
// conversation: the state machine position, the collected record, and the
// scheduling artifacts produced after processing.
type Session struct {
	ID     string `json:"id"`
	State  State  `json:"state"`
	Record Record `json:"record"`

	// Populated once processing completes.
	Report *matching.Report  `json:"report,omitempty"`
	Urgent bool              `json:"urgent"`
	Band   string            `json:"band,omitempty"`
	Draft  appointment.Draft `json:"draft,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession starts a fresh conversation in the greeting state.
func NewSession(now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		State:     StateGreeting,
		Draft:     appointment.Draft{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
