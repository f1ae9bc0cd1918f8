// Package cli provides common CLI initialization utilities.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"orderimport/internal/config"
	applog "orderimport/internal/log"
)

// SetupLogger builds the application logger from cfg and installs it as the
// slog default. Unknown levels fall back to info.
func SetupLogger(cfg *config.Config) *applog.Logger {
	lc := applog.DefaultConfig()
	if cfg != nil {
		if level, err := applog.ParseLevel(cfg.LogLevel); err == nil {
			lc.Level = level
		}
		lc.Format = cfg.LogFormat
	}
	logger := applog.New(lc)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration, applies overrides in order and
// validates the result. Returns the config or exits the process on
// validation failure.
func LoadAndValidateConfig(logger *applog.Logger, overrides ...func(*config.Config)) *config.Config {
	cfg := config.Load()
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpValidate)
		os.Exit(1)
	}
	return cfg
}
