package global

import (
	"github.com/cfan/cfan/internal/configuration"
	"github.com/cfan/cfan/internal/ui"
)

// LoadValidConfig reads the config file, exits on validation errors and returns the result.
func LoadValidConfig() *configuration.Configuration {
	configuration.ReadConfigFile()
	if err := configuration.Validate(); err != nil {
		ui.Fatal("Config validation failed: %v", err)
	}
	return &configuration.CurrentConfig
}
