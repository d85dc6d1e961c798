package schedule

import "errors"

var (
	// ErrInvalidRuleFormat indicates an availability clause that does not
	// match the "Day[-Day] HH:MM-HH:MM" grammar.
	ErrInvalidRuleFormat = errors.New("schedule: invalid rule format")

	// ErrInvalidDayRange indicates a day range whose end day precedes its
	// start day. Ranges never wrap across the week boundary.
	ErrInvalidDayRange = errors.New("schedule: day range backwards")

	// ErrUnknownTimeBand indicates a time-of-day band outside
	// morning/afternoon/evening.
	ErrUnknownTimeBand = errors.New("schedule: unknown time band")

	// ErrNoAvailableSlots indicates selection was attempted on an empty
	// filtered slot set.
	ErrNoAvailableSlots = errors.New("schedule: no available slots")
)
