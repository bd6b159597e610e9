package utils

import (
	"time"
)

// Today returns the current UTC date truncated to day granularity.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// WindowRange returns the inclusive [today-windowDays, today] range.
// windowDays = 30 spans 31 calendar days including today.
func WindowRange(windowDays int) (start, end time.Time) {
	end = Today()
	start = end.AddDate(0, 0, -windowDays)
	return start, end
}

func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

func FormatDate(date time.Time) string {
	return date.Format("2006-01-02")
}
