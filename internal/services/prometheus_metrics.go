package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	accountsCreatedTotal      prometheus.Counter
	holdingsAddedTotal        *prometheus.CounterVec
	marksToggledTotal         *prometheus.CounterVec
	authenticationEventsTotal *prometheus.CounterVec
	dashboardDuration         prometheus.Histogram
	seededRecordsTotal        *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		accountsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "accounts_created_total",
				Help: "Total number of brokerage accounts created",
			},
		),
		holdingsAddedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holdings_added_total",
				Help: "Total number of holdings recorded",
			},
			[]string{"symbol"},
		),
		marksToggledTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marks_toggled_total",
				Help: "Total number of mark toggle operations",
			},
			[]string{"symbol"},
		),
		authenticationEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		dashboardDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dashboard_load_duration_milliseconds",
				Help:    "Dashboard assembly duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		seededRecordsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seeded_records_total",
				Help: "Total number of demo records created by seeding",
			},
			[]string{"kind"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "accounts_created":
		m.accountsCreatedTotal.Inc()
	case "holdings_added":
		m.holdingsAddedTotal.WithLabelValues(tags["symbol"]).Inc()
	case "marks_toggled":
		m.marksToggledTotal.WithLabelValues(tags["symbol"]).Inc()
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	case "seeded_records":
		if kind := tags["kind"]; kind != "" {
			m.seededRecordsTotal.WithLabelValues(kind).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "dashboard_load":
		m.dashboardDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	// No gauges yet; dashboard state is derived per request
}
