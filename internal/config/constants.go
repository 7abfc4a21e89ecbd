package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./gymclock.db"

	// DefaultRolloverSchedule clears completion flags every Monday at midnight
	DefaultRolloverSchedule = "0 0 * * 1"

	// ConfigFileEnv names the optional TOML config file
	ConfigFileEnv = "GYMCLOCK_CONFIG"
)
