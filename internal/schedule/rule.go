package schedule

import (
	"fmt"
	"regexp"
	"strings"
)

// Weekday indices run Mon=0 through Sun=6. Availability rules, calendars and
// specialist schedules all use this indexing; conversion to time.Weekday
// happens only when a rule is matched against a concrete date.
var dayIndex = map[string]int{
	"Mon": 0,
	"Tue": 1,
	"Wed": 2,
	"Thu": 3,
	"Fri": 4,
	"Sat": 5,
	"Sun": 6,
}

// Window is the bookable span of a single weekday.
type Window struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Rules maps weekday index (Mon=0..Sun=6) to the bookable window on that day.
type Rules map[int]Window

var clauseRE = regexp.MustCompile(`^([A-Za-z]{3})(?:-([A-Za-z]{3}))?\s+(\d{2}:\d{2})-(\d{2}:\d{2})$`)

// ParseClause parses a single availability clause such as "Mon-Wed 14:00-18:00"
// or "Sat 09:00-12:00". Day abbreviations are case-sensitive. A backward range
// (end day before start day) fails with ErrInvalidDayRange.
func ParseClause(clause string) (Rules, error) {
	clause = strings.TrimSpace(clause)
	m := clauseRE.FindStringSubmatch(clause)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRuleFormat, clause)
	}

	d1, ok := dayIndex[m[1]]
	if !ok {
		return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidRuleFormat, m[1])
	}
	d2 := d1
	if m[2] != "" {
		d2, ok = dayIndex[m[2]]
		if !ok {
			return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidRuleFormat, m[2])
		}
		if d2 < d1 {
			return nil, fmt.Errorf("%w: %s-%s", ErrInvalidDayRange, m[1], m[2])
		}
	}

	start, err := ParseTimeOfDay(m[3])
	if err != nil {
		return nil, err
	}
	end, err := ParseTimeOfDay(m[4])
	if err != nil {
		return nil, err
	}

	rules := make(Rules, d2-d1+1)
	for d := d1; d <= d2; d++ {
		rules[d] = Window{Start: start, End: end}
	}
	return rules, nil
}

// ParseSchedule parses a full semicolon-separated weekly availability
// specification, e.g. "Mon-Wed 14:00-18:00; Sat 09:00-12:00". When clauses
// target the same weekday the later clause wins.
func ParseSchedule(spec string) (Rules, error) {
	result := Rules{}
	for _, clause := range strings.Split(spec, ";") {
		rules, err := ParseClause(clause)
		if err != nil {
			return nil, err
		}
		for day, window := range rules {
			result[day] = window
		}
	}
	return result, nil
}
