package schedule

import "sort"

// SelectSlot picks one appointment slot from a numbered set: slots are ordered
// by (date, time) ascending and the first is returned. The urgency flag is
// accepted but does not change the decision today — urgent and non-urgent
// requests both take the earliest slot (urgency already narrowed the date set
// upstream). Symptom text is reserved for future weighting and unused.
func SelectSlot(slots map[int]NumberedSlot, urgent bool, symptoms string) (NumberedSlot, error) {
	if len(slots) == 0 {
		return NumberedSlot{}, ErrNoAvailableSlots
	}

	ordered := make([]NumberedSlot, 0, len(slots))
	for _, s := range slots {
		ordered = append(ordered, s)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Date != ordered[j].Date {
			return ordered[i].Date < ordered[j].Date
		}
		return ordered[i].Time < ordered[j].Time
	})

	return ordered[0], nil
}
