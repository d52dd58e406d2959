package domain

import "time"

// NextOccurrence returns the due date of the next instance of a recurring
// task after the given due date, or false when the task is not recurring,
// its recurrence settings are unusable, or the next instance would fall
// past RecurringEndDate.
func (t Task) NextOccurrence(after time.Time) (time.Time, bool) {
	if !t.IsRecurring || after.IsZero() {
		return time.Time{}, false
	}

	var next time.Time
	switch t.RecurringPattern {
	case RecurringDaily:
		next = after.AddDate(0, 0, 1)
	case RecurringWeekly:
		next = after.AddDate(0, 0, 7)
	case RecurringBiweekly:
		next = after.AddDate(0, 0, 14)
	case RecurringMonthly:
		next = after.AddDate(0, 1, 0)
	case RecurringYearly:
		next = after.AddDate(1, 0, 0)
	case RecurringCustom:
		if t.RecurringInterval < 1 {
			return time.Time{}, false
		}
		next = after.AddDate(0, 0, t.RecurringInterval)
	default:
		return time.Time{}, false
	}

	if t.RecurringEndDate != nil && next.After(*t.RecurringEndDate) {
		return time.Time{}, false
	}
	return next, true
}
