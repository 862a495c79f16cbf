package workday

import (
	"fmt"
	"time"
)

// The day boundary follows the server's local clock. A record keyed on
// 00:00 local time covers 00:00:00.000 through 23:59:59.999 of that day,
// regardless of the caller's time zone.

// Today returns the current work day: now truncated to local midnight.
func Today() time.Time {
	return Truncate(time.Now())
}

// Truncate drops the time-of-day portion of t in local time.
func Truncate(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// DayWindow returns the inclusive start and exclusive end of the work day
// containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := Truncate(t)
	return start, start.AddDate(0, 0, 1)
}

// MonthWindow returns the inclusive start and exclusive end of the calendar
// month containing t.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	t = t.Local()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

// FormatMinutes renders a whole-minute duration as "2h 5m".
func FormatMinutes(totalMinutes int) string {
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}
