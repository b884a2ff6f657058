// Package metrics provides centralized Prometheus business metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track news operations.
var (
	// NewsOperationsTotal counts usecase operations by name and outcome.
	// result is one of: success, invalid, not_found, error
	NewsOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_operations_total",
			Help: "Total number of news operations by outcome",
		},
		[]string{"operation", "result"},
	)

	// NewsTotal tracks the number of stored news articles.
	// Refreshed by the stats job.
	NewsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "news_total",
			Help: "Total number of news articles in storage",
		},
	)

	// BulkDeleteIDs measures how many ids a single delete-many request carries.
	BulkDeleteIDs = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "news_bulk_delete_ids",
			Help:    "Number of ids per bulk delete request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	// BulkDeleteFailuresTotal counts ids that could not be deleted in bulk requests.
	BulkDeleteFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "news_bulk_delete_failures_total",
			Help: "Total number of ids that failed within bulk delete requests",
		},
	)
)

// Storage metrics track the persistence layer.
var (
	// StorageOperationDuration measures repository call latency.
	StorageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_operation_duration_seconds",
			Help:    "Storage operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// StatsJobRunsTotal counts stats job executions by status.
	StatsJobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_job_runs_total",
			Help: "Total number of stats job runs",
		},
		[]string{"status"},
	)
)
