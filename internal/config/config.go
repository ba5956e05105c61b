// Package config provides configuration management for quando.
package config

// Config is the root configuration structure for quando.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Jobs    JobsConfig    `mapstructure:"jobs"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `mapstructure:"level"`

	// Format is "console" or "json".
	Format string `mapstructure:"format"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	// Enable the /metrics HTTP endpoint
	Enabled bool `mapstructure:"enabled"`

	// Address to serve metrics on
	Addr string `mapstructure:"addr"`
}

// JobsConfig locates the job definitions file.
type JobsConfig struct {
	// Path to the YAML jobs file
	Path string `mapstructure:"path"`

	// Watch the jobs file and reload on change
	Watch bool `mapstructure:"watch"`
}
