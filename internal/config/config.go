// Package config provides the runtime configuration for the bspnum library.
// It defines the data structure for the configuration, reads overrides from
// environment variables, and performs validation on the configuration values.
package config

import (
	"runtime"

	apperrors "github.com/agbru/bspnum/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables used by bspnum.
	// Environment variables provide an alternative to programmatic options,
	// following the 12-Factor App methodology.
	EnvPrefix = "BSPNUM_"
)

// Default configuration values.
// These can be overridden via environment variables or programmatic options.
const (
	// DefaultLogLevel is the default logging level for the runtime.
	DefaultLogLevel = "info"
)

// Config aggregates the runtime configuration parameters for a BSP
// environment. It encapsulates the settings that control process spawning
// and observability, not the parameters of any individual transform.
type Config struct {
	// Procs is the default number of ranks spawned by an environment when
	// the caller does not request an explicit count.
	Procs int
	// LogLevel selects the zerolog level for runtime logging
	// ("debug", "info", "warn", "error", "disabled").
	LogLevel string
	// Metrics, if false, is a hint that callers do not scrape the Prometheus
	// collectors; the collectors are still registered but superstep-level
	// instrumentation may be skipped.
	Metrics bool
}

// Default returns the built-in configuration: one rank per logical CPU,
// info-level logging, metrics enabled.
func Default() Config {
	return Config{
		Procs:    runtime.NumCPU(),
		LogLevel: DefaultLogLevel,
		Metrics:  true,
	}
}

// FromEnv returns the default configuration with environment variable
// overrides applied.
//
// Supported environment variables:
//   - BSPNUM_PROCS: Default number of ranks to spawn (int).
//   - BSPNUM_LOG_LEVEL: Runtime logging level (string).
//   - BSPNUM_METRICS: Enable superstep metrics (bool: true/false, 1/0, yes/no).
func FromEnv() Config {
	cfg := Default()
	cfg.Procs = getEnvInt("PROCS", cfg.Procs)
	cfg.LogLevel = getEnvString("LOG_LEVEL", cfg.LogLevel)
	cfg.Metrics = getEnvBool("METRICS", cfg.Metrics)
	return cfg
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Returns:
//   - error: A ValidationError describing the first invalid field, or nil.
func (c Config) Validate() error {
	if c.Procs < 1 {
		return apperrors.NewValidationError("procs", "must be at least 1", c.Procs)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error", "fatal", "disabled":
	default:
		return apperrors.NewValidationError("log_level", "unknown level", c.LogLevel)
	}
	return nil
}
