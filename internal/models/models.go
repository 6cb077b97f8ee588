package models

import "time"

// Frequency is the cadence a habit is tracked against: one completion per
// calendar day, or one per ISO week.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Valid reports whether f is a recognized frequency value.
func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// PeriodUnit returns the singular noun for one period of this frequency.
func (f Frequency) PeriodUnit() string {
	if f == FrequencyWeekly {
		return "week"
	}
	return "day"
}

// User is an account that owns habits. Name is the lowercased lookup key;
// DisplayName preserves the casing the user typed at registration.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Habit is owned by exactly one user and is immutable except for deletion.
// Deleting a habit hard-deletes its completions.
type Habit struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Frequency   Frequency `json:"frequency"`
	CreatedAt   time.Time `json:"created_at"`
}

// Completion records that a habit was satisfied for the period containing
// CompletedAt. Completions are append-only: never mutated, never edited.
type Completion struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// Streak is derived from a habit's completion log; it is never stored.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Settings holds user-tunable application settings.
type Settings struct {
	Timezone string `json:"timezone"`
}
