package utils

import (
	"fmt"
	"time"

	"habitual/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// FormatWait renders the time remaining until t as a friendly duration,
// e.g. "5 hour(s) and 12 minute(s)" or "2 day(s) and 3 hour(s)".
func FormatWait(until, now time.Time) string {
	d := until.Sub(now)
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%d day(s) and %d hour(s)", days, hours)
	}
	return fmt.Sprintf("%d hour(s) and %d minute(s)", hours, minutes)
}
