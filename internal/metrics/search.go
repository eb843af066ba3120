package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search and export Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roster",
			Name:      "search_duration_seconds",
			Help:      "Filter and sort duration in seconds, excluding storage reads",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"kind"},
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roster",
			Name:      "search_requests_total",
			Help:      "Total number of searches",
		},
		[]string{"kind", "status"}, // "ok" / "invalid" / "error"
	)

	SearchMatchedRecords = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roster",
			Name:      "search_matched_records",
			Help:      "Number of records surviving a search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"kind"},
	)

	ExportRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roster",
			Name:      "export_rows_total",
			Help:      "Total number of rows written by exports",
		},
		[]string{"format"},
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers search and export metrics. Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(SearchDuration)
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchMatchedRecords)
		prometheus.MustRegister(ExportRowsTotal)
	})
}

// Search status label values.
const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// ObserveSearch records one search outcome.
func ObserveSearch(kind, status string, elapsed time.Duration, matched int) {
	SearchRequestsTotal.WithLabelValues(kind, status).Inc()
	if status != StatusOK {
		return
	}
	SearchDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	SearchMatchedRecords.WithLabelValues(kind).Observe(float64(matched))
}
