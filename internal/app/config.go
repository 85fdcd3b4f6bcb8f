package app

import (
	"errors"
	"fmt"
)

// DefaultWorkers is the scope resolution parallelism used when none is set.
const DefaultWorkers = 4

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Root string // project root holding definition files

	LogFormat string
	LogLevel  string
	TypeDefs  []string // NAME=EXPR named type definitions
	Workers   int
}

// NewConfig validates cfg and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Root == "" {
		return nil, errors.New("Root is a required configuration field and cannot be empty")
	}

	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.Workers < 0 {
		return nil, fmt.Errorf("invalid worker count %d: must not be negative", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}

	return &cfg, nil
}
