package schedule

import (
	"sort"
	"time"
)

// DateFormat is the wire format for calendar date keys.
const DateFormat = "2006-01-02"

// Default horizon and slot sizing for calendar expansion.
const (
	DefaultHorizonWeeks = 3
	DefaultSlotMinutes  = 90
)

// Slot is a single bookable start time on some date. Slots are always created
// available; there is no cancellation model here.
type Slot struct {
	Time      TimeOfDay `json:"time"`
	Available bool      `json:"available"`
}

// Calendar maps date keys (YYYY-MM-DD) to the slots generated for that date.
// Only dates whose weekday carries a rule are present.
type Calendar map[string][]Slot

// SortedDates returns the calendar's date keys in ascending order.
func (c Calendar) SortedDates() []string {
	dates := make([]string, 0, len(c))
	for d := range c {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// BuildCalendar expands weekly rules over [start, start+horizonWeeks] inclusive.
// Slots begin at the window start and advance by slotMinutes for as long as the
// slot's start is strictly before the window end. The last slot may therefore
// run past the nominal close (a 4-hour window with 90-minute slots yields three
// slots, the third ending 30 minutes late); callers rely on this.
func BuildCalendar(rules Rules, start time.Time, horizonWeeks, slotMinutes int) Calendar {
	if horizonWeeks <= 0 {
		horizonWeeks = DefaultHorizonWeeks
	}
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}

	cal := Calendar{}
	end := start.AddDate(0, 0, horizonWeeks*7)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		window, ok := rules[mondayIndexed(date.Weekday())]
		if !ok {
			continue
		}
		cal[date.Format(DateFormat)] = generateSlots(window, slotMinutes)
	}
	return cal
}

// mondayIndexed converts Go's Sunday-first weekday to the Mon=0..Sun=6
// indexing used by Rules.
func mondayIndexed(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func generateSlots(window Window, slotMinutes int) []Slot {
	var slots []Slot
	for t := window.Start; t < window.End; t = t.Add(slotMinutes) {
		slots = append(slots, Slot{Time: t, Available: true})
	}
	return slots
}
