// Package matching ranks candidate specialists against a patient's analyzed
// concerns, combining expertise keyword overlap with estimated location
// proximity.
package matching

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSpecialists indicates matching was attempted against an empty
// directory.
var ErrNoSpecialists = errors.New("matching: no specialists loaded")

// Specialist is a candidate provider. Expertise, Subspecialty and Schedule
// are free text straight from the source table; the three score fields are
// derived during matching, never intrinsic.
type Specialist struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Expertise    string `json:"expertise"`
	Subspecialty string `json:"subspecialty"`
	Address      string `json:"address"`
	Schedule     string `json:"schedule"` // weekly availability rule text, e.g. "Mon-Wed 14:00-18:00; Sat 09:00-12:00"
	Modality     string `json:"modality"`

	ExpertiseScore float64 `json:"expertise_score"`
	LocationScore  float64 `json:"location_score"`
	MatchScore     float64 `json:"match_score"`
}

// Directory holds the already-loaded specialist table. Loading and parsing
// the source file is the caller's problem; the core only consumes the list.
type Directory struct {
	mu          sync.RWMutex
	specialists []Specialist
}

// NewDirectory creates a directory over an in-memory specialist list.
func NewDirectory(specialists []Specialist) *Directory {
	d := &Directory{}
	d.Replace(specialists)
	return d
}

// List returns a copy of the loaded specialists in their original order.
// Input order matters: ties during ranking resolve to the first-listed.
func (d *Directory) List(ctx context.Context) []Specialist {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Specialist, len(d.specialists))
	copy(out, d.specialists)
	return out
}

// Replace swaps in a freshly loaded specialist table.
func (d *Directory) Replace(specialists []Specialist) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.specialists = append([]Specialist(nil), specialists...)
}

// Len reports how many specialists are loaded.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.specialists)
}
