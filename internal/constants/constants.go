package constants

import "time"

const (
	AppName           = "aviary"
	Version           = "v0.1.0"
	DefaultConfigPath = "~/.config/aviary/aviary_v1.json"

	// DefaultKeyringUser is the keyring account under which the advice
	// service API key is stored.
	DefaultKeyringUser = "advice-api-key"

	// StateVersion is the current persisted state schema version. A bump
	// starts from an empty state; there is no in-place migration.
	StateVersion = 1

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "aviary-"

	// Notify constants
	NotifierLockfileName   = "aviary-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.mwhitlock.aviary"
	NotificationTitle      = "Feather Alert!"

	// CompletedRetentionDays controls how long completed task ids are kept
	// before being pruned on load. Ids embed their calendar date.
	CompletedRetentionDays = 30
)

const (
	// Default settings values
	DefaultFeedTime             = "08:00"
	DefaultNotificationsEnabled = false
	DefaultTimezone             = "Local"
	DefaultLanguage             = "English"
	DefaultPollInterval         = 15 * time.Second
)
