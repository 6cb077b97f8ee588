package apperr

import (
	"errors"
	"fmt"
	"os"

	"habitual/internal/logger"
)

// Sentinel errors for the conditions the CLI reports to the user and
// recovers from. Anything else that bubbles out of storage is fatal.
var (
	ErrDuplicateCompletion = errors.New("habit already completed for this period")
	ErrHabitNotFound       = errors.New("habit not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidFrequency    = errors.New("frequency must be 'daily' or 'weekly'")
	ErrDuplicateHabit      = errors.New("a habit with this name already exists")
	ErrDuplicateUser       = errors.New("username already taken")
	ErrNotLoggedIn         = errors.New("not logged in, run 'habitual user login' first")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
