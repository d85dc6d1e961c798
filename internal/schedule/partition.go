package schedule

// urgentDateCount is how many of the earliest dates an urgent request is
// steered toward.
const urgentDateCount = 3

// PartitionByUrgency restricts the calendar to the dates matching the urgency
// flag. Urgent requests get the 3 earliest dates (fewer if the calendar is
// smaller); non-urgent requests get everything after the first 3, unless the
// calendar has 3 or fewer dates, in which case all dates are kept so the
// result is never empty. Selected date keys are returned in ascending order.
func PartitionByUrgency(cal Calendar, urgent bool) (Calendar, []string) {
	dates := cal.SortedDates()

	var selected []string
	if urgent {
		if len(dates) > urgentDateCount {
			selected = dates[:urgentDateCount]
		} else {
			selected = dates
		}
	} else {
		if len(dates) > urgentDateCount {
			selected = dates[urgentDateCount:]
		} else {
			selected = dates
		}
	}

	sub := make(Calendar, len(selected))
	for _, d := range selected {
		sub[d] = cal[d]
	}
	return sub, selected
}
