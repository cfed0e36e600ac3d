package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcome labels.
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusInvalid  = "invalid"
	StatusError    = "error"
)

// Query Prometheus metrics.
var (
	FetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docq",
			Name:      "fetch_total",
			Help:      "Total number of query fetches",
		},
		[]string{"collection", "status"},
	)

	FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docq",
			Name:      "fetch_duration_seconds",
			Help:      "Query fetch duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"collection"},
	)

	FetchRecords = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docq",
			Name:      "fetch_records",
			Help:      "Number of records returned per fetch",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"collection"},
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers query metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(FetchTotal)
	prometheus.MustRegister(FetchDuration)
	prometheus.MustRegister(FetchRecords)
	queryMetricsRegistered = true
}

// ObserveFetch records one fetch outcome. records is ignored unless status is StatusOK.
func ObserveFetch(collection, status string, elapsed time.Duration, records int) {
	FetchTotal.WithLabelValues(collection, status).Inc()
	FetchDuration.WithLabelValues(collection).Observe(elapsed.Seconds())
	if status == StatusOK {
		FetchRecords.WithLabelValues(collection).Observe(float64(records))
	}
}
