package budget

import (
	"testing"
	"time"

	"finance-tracker/internal/models"
)

func TestPeriodWindowMonthly(t *testing.T) {
	now := time.Date(2025, time.March, 15, 14, 30, 0, 0, time.Local)
	start, end := PeriodWindow(models.PeriodMonthly, now)

	wantStart := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	wantEnd := time.Date(2025, time.March, 31, 23, 59, 59, 999000000, time.Local)
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
}

func TestPeriodWindowMonthlyYearEnd(t *testing.T) {
	now := time.Date(2025, time.December, 31, 8, 0, 0, 0, time.Local)
	start, end := PeriodWindow(models.PeriodMonthly, now)

	if start.Month() != time.December || start.Day() != 1 {
		t.Errorf("start = %v, want December 1", start)
	}
	if end.Month() != time.December || end.Day() != 31 {
		t.Errorf("end = %v, want December 31", end)
	}
}

func TestPeriodWindowWeekly(t *testing.T) {
	now := time.Date(2025, time.March, 15, 9, 0, 0, 0, time.Local)
	start, end := PeriodWindow(models.PeriodWeekly, now)

	if start.Hour() != 0 || start.Day() != 15 {
		t.Errorf("start = %v, want March 15 midnight", start)
	}
	// 7-day inclusive window: 15th through 21st
	if end.Day() != 21 || end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("end = %v, want March 21 end of day", end)
	}
}

func TestPeriodWindowDaily(t *testing.T) {
	now := time.Date(2025, time.March, 15, 23, 50, 0, 0, time.Local)
	start, end := PeriodWindow(models.PeriodDaily, now)

	if start.Day() != 15 || start.Hour() != 0 {
		t.Errorf("start = %v, want March 15 midnight", start)
	}
	if end.Day() != 15 || end.Hour() != 23 || end.Second() != 59 {
		t.Errorf("end = %v, want March 15 end of day", end)
	}
	if !end.After(start) {
		t.Errorf("end %v must be after start %v", end, start)
	}
}
