// Package metrics provides Prometheus metrics definitions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hoteldesk"

var (
	// HTTPRequestDuration tracks requests served by the metrics listener.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route", "status_code"},
	)

	// StoreOperationDuration tracks account store I/O latency.
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Account store operation duration in seconds",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"role", "op", "status"},
	)

	// StoreAccounts tracks the number of accounts seen on the last load.
	StoreAccounts = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "accounts",
			Help:      "Number of accounts per role at the last load",
		},
		[]string{"role"},
	)

	// StoreSkippedLines counts stored lines that failed to decode.
	StoreSkippedLines = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "skipped_lines_total",
			Help:      "Total malformed store lines skipped during loads",
		},
		[]string{"role"},
	)

	// AuthAttempts counts login attempts by outcome.
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Total login attempts by result",
		},
		[]string{"result"},
	)

	// BookingsRecorded counts appended booking records.
	BookingsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bookings",
			Name:      "recorded_total",
			Help:      "Total booking records appended by kind",
		},
		[]string{"kind"},
	)
)

// RecordStoreOperation records the duration of one store operation.
func RecordStoreOperation(role, op string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StoreOperationDuration.WithLabelValues(role, op, status).Observe(duration.Seconds())
}

// RecordStoreLoad updates gauges after a successful load.
func RecordStoreLoad(role string, accounts, skipped int) {
	StoreAccounts.WithLabelValues(role).Set(float64(accounts))
	if skipped > 0 {
		StoreSkippedLines.WithLabelValues(role).Add(float64(skipped))
	}
}

// RecordAuthAttempt records a login attempt result.
func RecordAuthAttempt(result string) {
	AuthAttempts.WithLabelValues(result).Inc()
}

// RecordBooking records an appended booking.
func RecordBooking(kind string) {
	BookingsRecorded.WithLabelValues(kind).Inc()
}
