package cli

import (
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/watzon/quando/internal/config"
	"github.com/watzon/quando/internal/metrics"
	"github.com/watzon/quando/internal/scheduler"
)

var (
	serveJobsPath    string
	serveOnly        string
	serveNoWatch     bool
	serveMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduler daemon",
	Long: `Run jobs from a YAML definitions file until interrupted.

The daemon will:
  - Load job definitions (name, schedule, command)
  - Start every job whose name matches --only
  - Watch the jobs file and reload on change

Use --no-watch to disable file watching.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveJobsPath, "jobs", "", "Path to the jobs file (default: quando.jobs.yaml)")
	serveCmd.Flags().StringVar(&serveOnly, "only", "*", "Glob pattern of job names to start")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Disable jobs file watching")
	serveCmd.Flags().StringVar(&serveMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: cfgFile})
	if err != nil {
		log.Warn().Err(err).Msg("No usable config file, using defaults")
		cfg = config.Default()
	}

	if cmd.Flags().Changed("jobs") {
		cfg.Jobs.Path = serveJobsPath
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = serveMetricsAddr
	}
	applyLogLevel(cfg)

	registry := scheduler.NewRegistry()
	if err := loadJobs(registry, cfg.Jobs.Path); err != nil {
		return err
	}

	started, err := registry.StartMatching(serveOnly)
	if err != nil {
		return err
	}
	log.Info().
		Str("jobs_file", cfg.Jobs.Path).
		Int("registered", registry.Len()).
		Int("started", started).
		Msg("Scheduler started")

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics.Addr)
	}

	if cfg.Jobs.Watch && !serveNoWatch {
		watcher, watchErr := NewWatcher(cfg.Jobs.Path, WithDebounce(500*time.Millisecond))
		if watchErr != nil {
			log.Warn().Err(watchErr).Msg("Failed to set up jobs file watcher, continuing without reload")
		} else {
			watcher.OnChange(func() {
				reloadJobs(registry, cfg.Jobs.Path)
			})
			defer func() { _ = watcher.Stop() }()
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("Shutdown signal received")
	registry.StopAll()
	return nil
}

// applyLogLevel raises or lowers the global level from config; --verbose
// always wins.
func applyLogLevel(cfg *config.Config) {
	if verbose {
		return
	}
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warn().Str("level", cfg.Logging.Level).Msg("Unknown log level, keeping info")
		return
	}
	zerolog.SetGlobalLevel(level)
}

// loadJobs fills the registry from the jobs file.
func loadJobs(registry *scheduler.Registry, path string) error {
	file, err := config.LoadJobsFile(path)
	if err != nil {
		return err
	}

	for _, def := range file.Jobs {
		job, err := scheduler.NewJob(def.Name, def.Schedule, commandHandler(def))
		if err != nil {
			return err
		}
		if err := registry.Add(job); err != nil {
			return err
		}
		log.Debug().
			Str("job", def.Name).
			Str("schedule", def.Schedule).
			Str("command", def.Command).
			Msg("Job registered")
	}
	return nil
}

// reloadJobs rebuilds the registry from the jobs file. A file that fails to
// load leaves the current jobs untouched.
func reloadJobs(registry *scheduler.Registry, path string) {
	file, err := config.LoadJobsFile(path)
	if err != nil {
		log.Error().Err(err).Msg("Jobs file changed but failed to load, keeping current jobs")
		return
	}

	for _, job := range registry.Jobs() {
		if err := registry.Remove(job.Name()); err != nil {
			log.Error().Err(err).Str("job", job.Name()).Msg("Failed to remove job during reload")
		}
	}
	for _, def := range file.Jobs {
		job, err := scheduler.NewJob(def.Name, def.Schedule, commandHandler(def))
		if err != nil {
			log.Error().Err(err).Str("job", def.Name).Msg("Skipping invalid job during reload")
			continue
		}
		if err := registry.Add(job); err != nil {
			log.Error().Err(err).Str("job", def.Name).Msg("Failed to register job during reload")
		}
	}

	started, err := registry.StartMatching(serveOnly)
	if err != nil {
		log.Error().Err(err).Msg("Failed to start jobs after reload")
		return
	}
	log.Info().
		Int("registered", registry.Len()).
		Int("started", started).
		Msg("Jobs reloaded")
}

// commandHandler builds the handler that runs a job's configured command.
func commandHandler(def config.JobDefinition) scheduler.Handler {
	return func() {
		command := exec.Command(def.Command, def.Args...)
		output, err := command.CombinedOutput()
		if err != nil {
			log.Error().
				Err(err).
				Str("job", def.Name).
				Str("command", def.Command).
				Str("output", string(output)).
				Msg("Job command failed")
			return
		}
		log.Debug().
			Str("job", def.Name).
			Str("output", string(output)).
			Msg("Job command completed")
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	log.Info().Str("addr", addr).Msg("Serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}
