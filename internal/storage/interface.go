package storage

import (
	"net/url"
	"strings"
	"time"

	"habitual/internal/models"
)

// Provider is the persistence surface the CLI works against. Two backends
// implement it: sqlite (default, local file) and postgres.
type Provider interface {
	// Init creates the backing database and applies all migrations.
	Init() error
	// Open opens an already-initialized database without validating its
	// schema version, so migrations can run against an outdated schema.
	Open() error
	// Load opens an already-initialized database and validates its schema
	// version.
	Load() error
	Close() error
	// GetConfigPath returns the directory holding the database file, logs
	// and backups. Empty for backends without a local file.
	GetConfigPath() string

	CreateUser(user models.User) error
	GetUser(id string) (models.User, error)
	GetUserByName(name string) (models.User, error)
	ListUsers() ([]models.User, error)
	// DeleteUser hard-deletes the user; habits and completions cascade.
	DeleteUser(id string) error

	CreateHabit(habit models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(userID, name string) (models.Habit, error)
	ListHabits(userID string) ([]models.Habit, error)
	ListHabitsByFrequency(userID string, freq models.Frequency) ([]models.Habit, error)
	// DeleteHabit hard-deletes the habit; its completions cascade.
	DeleteHabit(id string) error

	// RecordCompletion appends a completion after verifying that no
	// existing completion shares its period. Check and insert run in one
	// transaction so near-simultaneous completions cannot both pass the
	// duplicate check. Returns apperr.ErrDuplicateCompletion on conflict.
	RecordCompletion(habit models.Habit, completion models.Completion, loc *time.Location) error
	// ListCompletions returns the habit's completion timestamps in
	// ascending order.
	ListCompletions(habitID string) ([]time.Time, error)

	GetSettings() (models.Settings, error)
	SaveSettings(settings models.Settings) error

	// Session tracks the logged-in user as a store row, not ambient
	// process state.
	SetSessionUser(userID string) error
	GetSessionUser() (models.User, error)
	ClearSession() error
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries an inline password. Those are refused; credentials belong in the
// OS keyring or the environment.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, set := u.User.Password(); set {
				return true
			}
		}
		return false
	}

	// DSN format: space-separated key=value pairs.
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			return true
		}
	}
	return false
}

// IsPostgres reports whether the config value selects the postgres backend.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}
