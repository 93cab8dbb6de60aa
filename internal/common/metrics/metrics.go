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

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	CreatorsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creators_scored_total",
			Help: "Total creators scored for authenticity, by verdict",
		},
		[]string{"verdict"},
	)

	AuthenticityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "creator_authenticity_score",
			Help:    "Distribution of computed authenticity scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	CreatorsIndexed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creators_indexed_total",
			Help: "Total creators indexed into the search index, by outcome",
		},
		[]string{"status"},
	)

	ScoreCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_cache_requests_total",
			Help: "Fingerprint-keyed score cache lookups, by outcome",
		},
		[]string{"result"},
	)
)
