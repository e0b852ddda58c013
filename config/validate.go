package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/opsdesk/incidents/storage"
)

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	// Validate SQL log level
	if _, err := storage.ParseSQLLogLevel(cfg.Logging.SQL); err != nil {
		return fmt.Errorf("invalid logging.sql: %w", err)
	}

	// Validate storage
	if !isValidStorageDriver(cfg.Storage.Driver) {
		return fmt.Errorf("invalid storage.driver: %s (must be sqlite or postgres)", cfg.Storage.Driver)
	}
	if cfg.Storage.Driver == DriverPostgres && strings.TrimSpace(cfg.Storage.DSN) == "" {
		return fmt.Errorf("storage.dsn is required when storage.driver is postgres")
	}

	// Validate color mode
	if !isValidColorMode(cfg.Display.Colors) {
		return fmt.Errorf("invalid display.colors: %s (must be auto, always, or never)", cfg.Display.Colors)
	}

	// Validate timezone mode
	if !isValidTimezoneMode(cfg.Display.Timezone) {
		return fmt.Errorf("invalid display.timezone: %s (must be local or utc)", cfg.Display.Timezone)
	}

	// Validate walkthrough inputs
	if cfg.Walkthrough.ListLimit <= 0 {
		return fmt.Errorf("walkthrough.list_limit must be positive")
	}
	if strings.TrimSpace(cfg.Walkthrough.Responsible) == "" {
		return fmt.Errorf("walkthrough.responsible must not be empty")
	}
	if utf8.RuneCountInString(cfg.Walkthrough.Responsible) > 120 {
		return fmt.Errorf("walkthrough.responsible must be at most 120 characters")
	}

	return nil
}

// isValidStorageDriver returns true if the given driver is supported.
func isValidStorageDriver(driver StorageDriver) bool {
	switch driver {
	case DriverSQLite, DriverPostgres:
		return true
	default:
		return false
	}
}

// isValidColorMode returns true if the given mode is valid.
func isValidColorMode(mode ColorMode) bool {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// isValidTimezoneMode returns true if the given mode is valid.
func isValidTimezoneMode(mode TimezoneMode) bool {
	switch mode {
	case TimezoneLocal, TimezoneUTC:
		return true
	default:
		return false
	}
}
