package schedule

import "fmt"

// Time bands are half-open hour-of-day ranges used to narrow slots to the
// patient's preferred part of the day.
const (
	BandMorning   = "morning"
	BandAfternoon = "afternoon"
	BandEvening   = "evening"
)

type bandRange struct {
	startHour int // inclusive
	endHour   int // exclusive
}

var bandRanges = map[string]bandRange{
	BandMorning:   {6, 12},
	BandAfternoon: {12, 18},
	BandEvening:   {18, 23},
}

// NumberedSlot is a slot assigned a stable 1-based sequence number after
// time-band filtering. Numbers are contiguous across the whole filtered set,
// ordered by (date, time), not per date.
type NumberedSlot struct {
	Number int       `json:"number"`
	Date   string    `json:"date"`
	Time   TimeOfDay `json:"time"`
}

// FilterByTimeBand keeps the available slots whose hour falls inside the named
// band and numbers them sequentially in (date, time) order. The returned map
// is keyed by slot number, 1..K.
func FilterByTimeBand(cal Calendar, band string) (map[int]NumberedSlot, error) {
	r, ok := bandRanges[band]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimeBand, band)
	}

	numbered := make(map[int]NumberedSlot)
	n := 1
	for _, date := range cal.SortedDates() {
		for _, slot := range cal[date] {
			if !slot.Available {
				continue
			}
			hour := slot.Time.Hour()
			if hour < r.startHour || hour >= r.endHour {
				continue
			}
			numbered[n] = NumberedSlot{Number: n, Date: date, Time: slot.Time}
			n++
		}
	}
	return numbered, nil
}
