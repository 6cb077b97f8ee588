package cli

import (
	"time"

	"habitual/internal/backup"
	"habitual/internal/logger"
	"habitual/internal/migration"
	"habitual/internal/models"
	"habitual/internal/storage"
	"habitual/internal/utils"
)

// Context carries the shared dependencies into every command. The current
// user is resolved from the store's session row on demand; nothing about
// the session lives in process globals.
type Context struct {
	Store storage.Provider
	Debug bool
}

// CurrentUser returns the logged-in user, or apperr.ErrNotLoggedIn.
func (c *Context) CurrentUser() (models.User, error) {
	return c.Store.GetSessionUser()
}

// Location returns the timezone all period arithmetic runs in, from
// settings. Falls back to the system zone on any error.
func (c *Context) Location() *time.Location {
	settings, err := c.Store.GetSettings()
	if err != nil {
		logger.Warn("Failed to load settings, using local timezone", "error", err)
		return time.Local
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone in settings, using local timezone",
			"timezone", settings.Timezone, "error", err)
		return time.Local
	}
	return loc
}

// DatabaseFile is implemented by backends with a local database file.
type DatabaseFile interface {
	DatabasePath() string
}

// Migrator is implemented by backends that expose their migration runner.
type Migrator interface {
	MigrationRunner() *migration.Runner
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	fb, ok := c.Store.(DatabaseFile)
	if !ok {
		return
	}
	if _, err := backup.NewManager(fb.DatabasePath()).CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
