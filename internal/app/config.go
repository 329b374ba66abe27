package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
// Env-tagged fields pick up VISIONGO_* defaults before the CLI flags
// override them.
type Config struct {
	ManifestsPath string `env:"VISIONGO_MANIFESTS_PATH, default=manifests"`
	LogFormat     string `env:"VISIONGO_LOG_FORMAT, default=text"`
	LogLevel      string `env:"VISIONGO_LOG_LEVEL, default=info"`
	MetricsPort   int    `env:"VISIONGO_METRICS_PORT, default=0"`

	// Run-mode selection, set by the CLI only.
	Describe    bool
	ShowVersion bool
	Search      string
	Op          string
	InPath      string
	OutPath     string
	Params      map[string]string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	if cfg.Op != "" && (cfg.InPath == "" || cfg.OutPath == "") {
		return nil, errors.New("-op requires both -in and -out")
	}
	return &cfg, nil
}
