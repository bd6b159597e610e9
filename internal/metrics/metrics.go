package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SnapshotRequestsTotal   prometheus.Counter
	ConversionRequestsTotal prometheus.Counter
	HistoryRequestsTotal    prometheus.Counter

	HistoryDayFailuresTotal prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		SnapshotRequestsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "snapshot_requests_total",
				Help: "Total number of latest-rate snapshot requests",
			},
		),

		ConversionRequestsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "conversion_requests_total",
				Help: "Total number of currency conversion requests",
			},
		),

		HistoryRequestsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "history_requests_total",
				Help: "Total number of historical series requests",
			},
		),

		HistoryDayFailuresTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "history_day_failures_total",
				Help: "Total number of historical day-fetches that failed and were skipped",
			},
		),
	}
}
