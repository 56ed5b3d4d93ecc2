// Package logs defines how loggers are configured and created. Every component of the module logs through a logr.Logger (https://github.com/go-logr/logr); zap is used as backend.
package logs

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

var levels = []any{"debug", "info", "warn", "error"}

type LoggingConfiguration struct {
	// Level is the minimum level logged: debug, info, warn or error.
	Level string `mapstructure:"level"`
	// Format is either `json` (production) or `console` (human friendly).
	Format string `mapstructure:"format"`
	// Source is attached to every entry as the logger name e.g. the name of the service.
	Source string `mapstructure:"source"`
}

func (cfg *LoggingConfiguration) Validate() error {
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.Level, validation.Required, validation.In(levels...)),
		validation.Field(&cfg.Format, validation.Required, validation.In(FormatJSON, FormatConsole)),
	)
}

// DefaultLoggingConfiguration returns a configuration logging information entries as JSON.
func DefaultLoggingConfiguration() *LoggingConfiguration {
	return &LoggingConfiguration{
		Level:  "info",
		Format: FormatJSON,
		Source: "saas-provisioner",
	}
}
