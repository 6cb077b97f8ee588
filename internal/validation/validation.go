package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"habitual/internal/apperr"
	"habitual/internal/constants"
	"habitual/internal/models"
)

var (
	habitNamePattern = regexp.MustCompile(`^[A-Za-z0-9 \-]+$`)
	usernamePattern  = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// HabitName validates a habit name: non-empty, bounded length, letters,
// numbers, spaces and dashes only. Returns the trimmed name.
func HabitName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("habit name cannot be empty")
	}
	if len(name) > constants.MaxHabitNameLength {
		return "", fmt.Errorf("habit name too long, limit is %d characters", constants.MaxHabitNameLength)
	}
	if !habitNamePattern.MatchString(name) {
		return "", fmt.Errorf("habit name can only contain letters, numbers, spaces, and dashes")
	}
	return name, nil
}

// Username validates a username: non-empty, bounded length, alphanumeric.
// Returns the trimmed name.
func Username(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("username cannot be empty")
	}
	if len(name) > constants.MaxUsernameLength {
		return "", fmt.Errorf("username too long, limit is %d characters", constants.MaxUsernameLength)
	}
	if !usernamePattern.MatchString(name) {
		return "", fmt.Errorf("username can only contain letters and numbers")
	}
	return name, nil
}

// Frequency parses a frequency string, rejecting anything but the known
// cadences at creation time.
func Frequency(s string) (models.Frequency, error) {
	f := models.Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", apperr.ErrInvalidFrequency
	}
	return f, nil
}

// Date parses a YYYY-MM-DD date string in the given location.
func Date(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// Timezone checks if the timezone name is valid.
func Timezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
