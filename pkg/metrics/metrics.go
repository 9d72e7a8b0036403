// Package metrics provides Prometheus metrics for the aster service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal tracks outbound Attio requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aster",
			Subsystem: "http_client",
			Name:      "requests_total",
			Help:      "Total number of outbound HTTP requests",
		},
		[]string{"method", "status_code"},
	)

	// HTTPRequestDuration tracks outbound Attio request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aster",
			Subsystem: "http_client",
			Name:      "request_duration_seconds",
			Help:      "Duration of outbound HTTP requests in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	// SchemaViolationsTotal tracks response bodies that failed validation
	SchemaViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aster",
			Subsystem: "attio",
			Name:      "schema_violations_total",
			Help:      "Total number of Attio responses that did not match their schema",
		},
		[]string{"schema"},
	)

	// ReconcileOutcomesTotal tracks reconciliation results by operation and outcome
	ReconcileOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aster",
			Subsystem: "reconcile",
			Name:      "outcomes_total",
			Help:      "Total number of reconciliation operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	// EventsPublished tracks reconciliation events sent to Kafka
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aster",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of events published",
		},
		[]string{"topic", "status"},
	)

	// EventPublishDuration tracks event publish latency
	EventPublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "aster",
			Subsystem: "events",
			Name:      "publish_duration_seconds",
			Help:      "Duration of event publishes in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)
)

// RecordHTTPRequest records an outbound HTTP request metric
func RecordHTTPRequest(method, statusCode string, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method).Observe(durationSeconds)
}

func RecordSchemaViolation(schema string) {
	SchemaViolationsTotal.WithLabelValues(schema).Inc()
}

// RecordReconcile records the outcome of a reconciliation operation
func RecordReconcile(operation, outcome string) {
	ReconcileOutcomesTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordEventPublish records a Kafka publish operation
func RecordEventPublish(topic, status string, durationSeconds float64) {
	EventsPublished.WithLabelValues(topic, status).Inc()
	EventPublishDuration.Observe(durationSeconds)
}
