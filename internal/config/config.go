package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Global
		Database
		Log
		Rollover
		Timer
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Log struct {
		Level      string
		File       string // empty logs to stderr only
		ToConsole  bool   // also log to stderr when File is set
		FormatJSON bool
	}
	Rollover struct {
		Enabled  bool
		Schedule string // Cron format: "0 0 * * 1" = Monday midnight
	}
	Timer struct {
		DefaultRestSeconds int
	}
)

// NewConfig reads the configuration from the environment. When
// GYMCLOCK_CONFIG points to a TOML file its values are used as well;
// environment variables win over the file.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("log_to_console", true)
	v.SetDefault("log_format_json", false)
	v.SetDefault("rollover_enabled", true)
	v.SetDefault("rollover_schedule", DefaultRolloverSchedule)
	v.SetDefault("default_rest_seconds", 90)

	if path := v.GetString(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return &Config{
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Log: Log{
			Level:      v.GetString("LOG_LEVEL"),
			File:       v.GetString("LOG_FILE"),
			ToConsole:  v.GetBool("LOG_TO_CONSOLE"),
			FormatJSON: v.GetBool("LOG_FORMAT_JSON"),
		},
		Rollover: Rollover{
			Enabled:  v.GetBool("ROLLOVER_ENABLED"),
			Schedule: v.GetString("ROLLOVER_SCHEDULE"),
		},
		Timer: Timer{
			DefaultRestSeconds: v.GetInt("DEFAULT_REST_SECONDS"),
		},
	}, nil
}
