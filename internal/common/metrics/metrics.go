// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	MigrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placeholder_migrations_total",
			Help: "Total number of placeholder migrations by detected format",
		},
		[]string{"format"},
	)

	MigrationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placeholder_migrations_failed_total",
			Help: "Total number of failed placeholder migrations",
		},
		[]string{"format"},
	)

	MigrationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "placeholder_migration_duration_seconds",
			Help: "Duration of placeholder migration in seconds",
		},
		[]string{"format"},
	)

	DetectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placeholder_detections_total",
			Help: "Total number of gap detection runs by method",
		},
		[]string{"method"},
	)

	DetectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "placeholder_detection_duration_seconds",
			Help: "Duration of gap detection in seconds",
		},
		[]string{"method"},
	)

	GapsDetected = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "placeholder_gaps_per_detection",
			Help:    "Number of gaps found per detection run",
			Buckets: prometheus.LinearBuckets(0, 2, 11),
		},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "placeholder_migration_cache_hits_total",
			Help: "Total number of migration cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "placeholder_migration_cache_misses_total",
			Help: "Total number of migration cache misses",
		},
	)
)
