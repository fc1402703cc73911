// Package metrics exposes Prometheus collectors for the triage pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Emails processed, by outcome and assigned category
	EmailProcessedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_emails_processed_total",
			Help: "Total number of emails run through the triage pipeline",
		},
		[]string{"status", "category"}, // status: success, failed; category: label or "none"
	)

	// Pipeline failures by kind
	PipelineFailureCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_pipeline_failures_total",
			Help: "Total number of pipeline failures by failure kind",
		},
		[]string{"kind"},
	)

	// Completion call latency (seconds)
	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "triage_completion_duration_seconds",
			Help:    "External completion call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~100s
		},
		[]string{"task", "status"}, // task: classify, respond; status: ok, error
	)

	// Sink calls by sink and action
	SinkCallCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_sink_calls_total",
			Help: "Total number of downstream sink calls",
		},
		[]string{"sink", "action"}, // sink: notification, ticketing
	)

	// Batch duration (seconds)
	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_batch_duration_seconds",
			Help:    "End-to-end batch processing duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10), // 500ms to ~8m
		},
	)

	// Batch sizes
	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_batch_emails",
			Help:    "Number of emails per processed batch",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8), // 1 to 128
		},
	)
)

// RecordEmailProcessed counts one finished email. category should be
// "none" when classification never succeeded.
func RecordEmailProcessed(status, category string) {
	EmailProcessedCount.WithLabelValues(status, category).Inc()
}

// RecordFailure counts one pipeline failure by kind.
func RecordFailure(kind string) {
	PipelineFailureCount.WithLabelValues(kind).Inc()
}

// RecordCompletionDuration records one completion call.
func RecordCompletionDuration(task, status string, duration time.Duration) {
	CompletionDuration.WithLabelValues(task, status).Observe(duration.Seconds())
}

// IncrementSinkCall counts one downstream sink call.
func IncrementSinkCall(sink, action string) {
	SinkCallCount.WithLabelValues(sink, action).Inc()
}

// RecordBatch records one completed batch.
func RecordBatch(duration time.Duration, size int) {
	BatchDuration.Observe(duration.Seconds())
	BatchSize.Observe(float64(size))
}
