// Package metrics exposes Prometheus collectors for the scheduler.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	jobFiringsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quando_job_firings_total",
			Help: "Total number of job firings",
		},
		[]string{"job", "status"},
	)

	jobHandlerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quando_job_handler_duration_seconds",
			Help:    "Handler execution time in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"job"},
	)

	jobsRegistered = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quando_jobs_registered",
			Help: "Number of jobs currently registered",
		},
	)
)

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordJobFiring records one handler invocation and its outcome.
func RecordJobFiring(job, status string, duration time.Duration) {
	jobFiringsTotal.WithLabelValues(job, status).Inc()
	jobHandlerDuration.WithLabelValues(job).Observe(duration.Seconds())
}

// SetJobsRegistered updates the registered-jobs gauge.
func SetJobsRegistered(n int) {
	jobsRegistered.Set(float64(n))
}
