package config

import (
	"github.com/spf13/viper"
)

// Walkthrough defaults.
const (
	DefaultWalkthroughDescription = "Intermittent interruption detected on process line."
	DefaultWalkthroughResponsible = "Juan Pérez"
	DefaultWalkthroughListLimit   = 5
)

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	// Logging defaults
	v.SetDefault("logging.sql", "silent")

	// Storage defaults
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "") // Empty means use platform default
	v.SetDefault("storage.dsn", "")

	// Display defaults
	v.SetDefault("display.colors", "auto")
	v.SetDefault("display.timezone", "local")

	// Walkthrough defaults
	v.SetDefault("walkthrough.description", DefaultWalkthroughDescription)
	v.SetDefault("walkthrough.responsible", DefaultWalkthroughResponsible)
	v.SetDefault("walkthrough.list_limit", DefaultWalkthroughListLimit)
}
