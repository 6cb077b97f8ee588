package constants

const (
	AppName            = "habitual"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitual/habitual.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is the storage format for completion timestamps
	TimestampFormat = "2006-01-02T15:04:05Z07:00"

	// MaxHabitNameLength bounds habit names at creation time
	MaxHabitNameLength = 50

	// MaxUsernameLength bounds usernames at registration time
	MaxUsernameLength = 30

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitual-"
	BackupFileSuffix = ".db"
)
