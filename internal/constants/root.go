package constants

const (
	AppName            = "weekendly"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/weekendly"
	Version            = "v0.3.0"

	// TimeFormat is the clock format used for every start and end time (HH:MM)
	TimeFormat = "15:04"

	// Storage keys
	WorkingDraftKey = "weekendly_draft"
	SavedPlansKey   = "weekendly_plans"

	// Backend names
	BackendDiskv    = "diskv"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"

	// Plan defaults
	DefaultPlanName = "My Perfect Weekend"

	// Slot grid constants
	DefaultSlotStepMin = 30
	MinutesPerDay      = 24 * 60

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "weekendly-"
	BackupFileSuffix = ".json"

	// Environment variables
	EnvDBConnection = "WEEKENDLY_DB_CONNECTION"
	EnvPrefix       = "WEEKENDLY"
)
