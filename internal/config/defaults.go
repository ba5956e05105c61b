package config

// Default configuration values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	DefaultMetricsAddr = "localhost:9120"

	DefaultJobsPath = "quando.jobs.yaml"
)

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    DefaultMetricsAddr,
		},
		Jobs: JobsConfig{
			Path:  DefaultJobsPath,
			Watch: true,
		},
	}
}
