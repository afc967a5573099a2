package budget

import (
	"time"

	"finance-tracker/internal/models"
)

// PeriodWindow computes the [start, end] window a new limit covers, based
// on its period and the current time:
//
//	monthly: first through last day of the current calendar month
//	weekly:  today through today+6 days (7-day inclusive window)
//	daily:   today only
//
// Bounds are normalized to local midnight and 23:59:59.999.
func PeriodWindow(period string, now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var start, end time.Time
	switch period {
	case models.PeriodMonthly:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)
	case models.PeriodWeekly:
		start = today
		end = today.AddDate(0, 0, 7)
	default: // daily
		start = today
		end = today.AddDate(0, 0, 1)
	}
	return start, end.Add(-time.Millisecond)
}
