// Package observability exposes Prometheus metrics for the time tracker.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	recordMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "time_tracker",
		Subsystem: "records",
		Name:      "mutations_total",
		Help:      "Successful record mutations by operation.",
	}, []string{"operation"})
	validationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "time_tracker",
		Subsystem: "records",
		Name:      "validation_failures_total",
		Help:      "Record mutations rejected by validation.",
	})
	persistFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "time_tracker",
		Subsystem: "persistence",
		Name:      "save_failures_total",
		Help:      "Snapshots that could not be written to persistence.",
	})
	recordsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "time_tracker",
		Subsystem: "records",
		Name:      "stored",
		Help:      "Number of records currently held in memory.",
	})
)

func init() {
	prometheus.MustRegister(recordMutations, validationFailures, persistFailures, recordsGauge)
}

// RecordMutation counts a successful add, update or remove.
func RecordMutation(operation string) {
	recordMutations.WithLabelValues(operation).Inc()
}

// RecordValidationFailure counts a rejected mutation.
func RecordValidationFailure() {
	validationFailures.Inc()
}

// RecordPersistFailure counts a failed save.
func RecordPersistFailure() {
	persistFailures.Inc()
}

// SetStoredRecords updates the in-memory record gauge.
func SetStoredRecords(n int) {
	recordsGauge.Set(float64(n))
}
