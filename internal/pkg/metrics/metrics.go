// Package metrics exposes Prometheus instruments for the admin API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "schooladmin"

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	// mutations counts mutating service calls.
	// Labels: action, outcome
	mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "mutations_total",
		Help:      "Total mutating operations applied to the store",
	}, []string{"action", "outcome"})

	// operationDuration measures façade operations end to end.
	// Labels: operation, outcome
	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "operation_duration_seconds",
		Help:      "Latency of API operations in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"operation", "outcome"})

	// undos counts undo attempts.
	// Labels: action, outcome
	undos = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "activity_log",
		Name:      "undo_total",
		Help:      "Total undo attempts by action",
	}, []string{"action", "outcome"})

	activityLogSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "activity_log",
		Name:      "entries",
		Help:      "Entries currently retained in the activity log",
	})
)

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

// RecordMutation counts a mutating operation
func RecordMutation(action string, err error) {
	mutations.WithLabelValues(action, outcome(err)).Inc()
}

// ObserveOperation records the duration of a façade operation
func ObserveOperation(operation string, started time.Time, err error) {
	operationDuration.WithLabelValues(operation, outcome(err)).Observe(time.Since(started).Seconds())
}

// RecordUndo counts an undo attempt
func RecordUndo(action string, err error) {
	undos.WithLabelValues(action, outcome(err)).Inc()
}

// SetActivityLogSize publishes the current log length
func SetActivityLogSize(n int) {
	activityLogSize.Set(float64(n))
}
