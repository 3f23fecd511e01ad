// Package metrics provides Prometheus metrics for the Fern service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SnapshotRefreshesTotal tracks snapshot refreshes by status
	SnapshotRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "snapshot",
			Name:      "refreshes_total",
			Help:      "Total number of snapshot refreshes by status",
		},
		[]string{"status"},
	)

	// SnapshotRefreshDuration tracks snapshot refresh duration in seconds
	SnapshotRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "fern",
			Subsystem: "snapshot",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of snapshot refreshes in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	// SnapshotOrders tracks orders in the current snapshot
	SnapshotOrders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fern",
			Subsystem: "snapshot",
			Name:      "orders",
			Help:      "Number of orders in the current snapshot",
		},
	)

	// SnapshotCompanies tracks tiered companies in the current snapshot
	SnapshotCompanies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fern",
			Subsystem: "snapshot",
			Name:      "companies",
			Help:      "Number of tiered companies in the current snapshot",
		},
	)

	// IngestRowsTotal tracks sheet rows seen by the ingest pipeline
	IngestRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "ingest",
			Name:      "rows_total",
			Help:      "Total number of sheet rows processed by outcome",
		},
		[]string{"outcome"},
	)

	// ChurnCompanies tracks companies by churn status
	ChurnCompanies = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fern",
			Subsystem: "churn",
			Name:      "companies",
			Help:      "Number of companies by churn status",
		},
		[]string{"status"},
	)

	// PlatformSwitchers tracks companies that moved off direct ordering
	PlatformSwitchers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fern",
			Subsystem: "churn",
			Name:      "platform_switchers",
			Help:      "Number of companies that recently switched to a third party platform",
		},
	)

	// KafkaMessagesPublished tracks Kafka messages published
	KafkaMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "kafka",
			Name:      "messages_published_total",
			Help:      "Total number of messages published to Kafka",
		},
		[]string{"topic", "status"},
	)

	// SheetFetchDuration tracks spreadsheet fetch duration
	SheetFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fern",
			Subsystem: "sheets",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of spreadsheet fetches in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"range"},
	)
)

// RecordSnapshotRefresh records a snapshot refresh
func RecordSnapshotRefresh(status string, durationSeconds float64) {
	SnapshotRefreshesTotal.WithLabelValues(status).Inc()
	SnapshotRefreshDuration.Observe(durationSeconds)
}

// RecordIngestRows records ingest outcomes for a batch of rows
func RecordIngestRows(kept, rejected int) {
	IngestRowsTotal.WithLabelValues("kept").Add(float64(kept))
	IngestRowsTotal.WithLabelValues("rejected").Add(float64(rejected))
}

// RecordKafkaPublish records a Kafka publish operation
func RecordKafkaPublish(topic, status string) {
	KafkaMessagesPublished.WithLabelValues(topic, status).Inc()
}

// RecordChurnStatus records the current churn status counts
func RecordChurnStatus(counts map[string]int) {
	for status, count := range counts {
		ChurnCompanies.WithLabelValues(status).Set(float64(count))
	}
}
