// Package dates holds the calendar helpers used by the dashboard and
// ingestion endpoints. All boundaries are computed in the configured
// dashboard timezone so that "today" matches the user's day, not the
// server's.
package dates

import (
	"os"
	"time"
)

const ISO = "2006-01-02"

// Location returns the dashboard timezone. Falls back to UTC if the
// configured zone cannot be loaded.
func Location() *time.Location {
	tz := os.Getenv("FITLOG_TIMEZONE")
	if tz == "" {
		tz = "America/New_York"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Now returns the current time in the dashboard timezone.
func Now() time.Time {
	return time.Now().In(Location())
}

// Today returns today's date as YYYY-MM-DD in the dashboard timezone.
func Today() string {
	return Now().Format(ISO)
}

// FormatISO formats a time as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.Format(ISO)
}

// ParseISO parses a YYYY-MM-DD string in the dashboard timezone.
func ParseISO(s string) (time.Time, error) {
	return time.ParseInLocation(ISO, s, Location())
}

// IsISODate reports whether s is a well-formed YYYY-MM-DD date.
func IsISODate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := ParseISO(s)
	return err == nil
}

// WeekStart returns the Sunday starting the week containing t.
func WeekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekEnd returns the Saturday ending the week containing t.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}

// MonthStart returns the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last day of the month containing t.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// Quarter returns the quarter number (1-4) for t.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// QuarterStart returns the first day of the quarter containing t.
func QuarterStart(t time.Time) time.Time {
	startMonth := time.Month((Quarter(t)-1)*3 + 1)
	return time.Date(t.Year(), startMonth, 1, 0, 0, 0, 0, t.Location())
}

// QuarterEnd returns the last day of the quarter containing t.
func QuarterEnd(t time.Time) time.Time {
	return QuarterStart(t).AddDate(0, 3, -1)
}
