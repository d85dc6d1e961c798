package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Jan 5 2026 is a Monday.
var testStart = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func TestBuildCalendar_SlotBoundaries(t *testing.T) {
	rules, err := ParseSchedule("Mon-Wed 14:00-18:00; Sat 09:00-12:00")
	require.NoError(t, err)

	cal := BuildCalendar(rules, testStart, 3, 90)

	// 3 weeks inclusive from a Monday: 4 Mondays, 3 each of Tue/Wed/Sat.
	require.Len(t, cal, 13)

	for _, date := range cal.SortedDates() {
		day, err := time.Parse(DateFormat, date)
		require.NoError(t, err)

		slots := cal[date]
		var times []string
		for _, s := range slots {
			assert.True(t, s.Available)
			times = append(times, s.Time.String())
		}

		switch day.Weekday() {
		case time.Monday, time.Tuesday, time.Wednesday:
			// The third slot ends at 18:30, past the 18:00 close. That
			// overrun is the documented behavior, not a bug.
			assert.Equal(t, []string{"14:00", "15:30", "17:00"}, times, date)
		case time.Saturday:
			assert.Equal(t, []string{"09:00", "10:30"}, times, date)
		default:
			t.Fatalf("unexpected weekday in calendar: %s", date)
		}
	}
}

func TestBuildCalendar_NoRuleNoDate(t *testing.T) {
	rules, err := ParseSchedule("Sun 10:00-11:30")
	require.NoError(t, err)

	cal := BuildCalendar(rules, testStart, 1, 90)

	// One week inclusive from Monday contains exactly one Sunday.
	require.Len(t, cal, 1)
	slots := cal["2026-01-11"]
	require.Len(t, slots, 1)
	assert.Equal(t, "10:00", slots[0].Time.String())
}

func TestBuildCalendar_HorizonInclusive(t *testing.T) {
	rules, err := ParseSchedule("Mon 09:00-10:00")
	require.NoError(t, err)

	cal := BuildCalendar(rules, testStart, 3, 90)

	// The horizon end date itself (start + 21 days, also a Monday) is included.
	assert.Contains(t, cal, "2026-01-26")
	assert.Len(t, cal, 4)
}

func TestBuildCalendar_Defaults(t *testing.T) {
	rules, err := ParseSchedule("Mon 09:00-12:00")
	require.NoError(t, err)

	cal := BuildCalendar(rules, testStart, 0, 0)

	// Defaults: 3-week horizon, 90-minute slots.
	require.Len(t, cal, 4)
	require.Len(t, cal["2026-01-05"], 2)
	assert.Equal(t, "10:30", cal["2026-01-05"][1].Time.String())
}

func TestSortedDates(t *testing.T) {
	cal := Calendar{
		"2026-01-12": nil,
		"2026-01-05": nil,
		"2026-01-07": nil,
	}
	assert.Equal(t, []string{"2026-01-05", "2026-01-07", "2026-01-12"}, cal.SortedDates())
}
