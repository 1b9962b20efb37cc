// Package recurrence computes the next occurrence of repeating chores.
package recurrence

import (
	"time"

	"github.com/dmitrijs2005/housekeeper/internal/client/models"
)

// ShouldCreateNextInstance reports whether completing a chore with frequency f
// spawns a follow-up chore.
func ShouldCreateNextInstance(f models.Frequency) bool {
	return f.Recurring()
}

// NextDueDate returns the due date following current for frequency f.
// Monthly and yearly steps keep the day of month, clamped to the last day of
// the target month. The second result is false for non-recurring frequencies.
func NextDueDate(current time.Time, f models.Frequency) (time.Time, bool) {
	switch f {
	case models.FrequencyDaily:
		return current.AddDate(0, 0, 1), true
	case models.FrequencyWeekly:
		return current.AddDate(0, 0, 7), true
	case models.FrequencyMonthly:
		return addMonthsClamped(current, 1), true
	case models.FrequencyYearly:
		return addMonthsClamped(current, 12), true
	default:
		return time.Time{}, false
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	// Normalize to the first of the month so AddDate cannot overflow.
	first := time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	ty, tm, _ := first.Date()
	if last := daysInMonth(ty, tm); day > last {
		day = last
	}
	return time.Date(ty, tm, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsOverdue reports whether an open chore due at due is past due at now.
// Comparison is by calendar day in now's location.
func IsOverdue(due time.Time, completed bool, now time.Time) bool {
	if completed || due.IsZero() {
		return false
	}
	return StartOfDay(due.In(now.Location())).Before(StartOfDay(now))
}
