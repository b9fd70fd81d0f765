package app

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

// Config holds all the necessary configuration for an App instance to run.
// Environment variables provide defaults; command-line flags override them.
type Config struct {
	// ModulesPath is the directory scanned for module definition files.
	ModulesPath string `env:"MODORDER_MODULES_PATH"`
	// DBPath is the SQLite audit database path. Empty disables persistence.
	DBPath string `env:"MODORDER_DB_PATH"`

	LogFormat   string `env:"MODORDER_LOG_FORMAT" envDefault:"json"`
	LogLevel    string `env:"MODORDER_LOG_LEVEL" envDefault:"info"`
	QueryPort   int    `env:"MODORDER_QUERY_PORT" envDefault:"0"`
	ScanWorkers int    `env:"MODORDER_SCAN_WORKERS" envDefault:"4"`
	// FailFast aborts startup on any validation finding instead of starting
	// degraded. The default is the degraded-mode contract.
	FailFast bool `env:"MODORDER_FAIL_FAST" envDefault:"false"`
}

// ConfigFromEnv returns a Config populated from MODORDER_* environment
// variables, for use as flag defaults.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewConfig validates a fully assembled configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModulesPath == "" {
		return nil, errors.New("ModulesPath is a required configuration field and cannot be empty")
	}
	if cfg.ScanWorkers < 1 {
		return nil, errors.New("ScanWorkers must be at least 1")
	}

	return &cfg, nil
}
