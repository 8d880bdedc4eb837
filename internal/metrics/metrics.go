// Package metrics defines Prometheus metrics for offer-tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ot"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded, 0 otherwise.",
	})
)

// Tick metrics.
var (
	TickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "tick_duration_seconds",
		Help:      "Duration of poll ticks in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	TicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticks_total",
		Help:      "Total number of poll ticks by outcome.",
	}, []string{"outcome"})

	OfferActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "offer_active",
		Help:      "1 if the tracked product qualified as an offer on the last successful tick.",
	})

	LastTickTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_tick_timestamp_seconds",
		Help:      "Unix timestamp of the last completed tick.",
	})
)

// Catalog metrics.
var (
	CatalogPagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_pages_total",
		Help:      "Total number of catalog pages fetched.",
	})

	CatalogErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_errors_total",
		Help:      "Total number of catalog fetch errors by kind.",
	}, []string{"kind"})

	CatalogRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_request_duration_seconds",
		Help:      "Duration of catalog page requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Notification metrics.
var (
	NotificationsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of offer notifications delivered.",
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of notification delivery calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// State store metrics.
var (
	StateResetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "state_resets_total",
		Help:      "Total number of notification state resets.",
	})

	StateErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "state_errors_total",
		Help:      "Total number of notification state store errors.",
	})
)

// Scheduler metrics.
var (
	SchedulerNextTickTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scheduler_next_tick_timestamp_seconds",
		Help:      "Unix timestamp of the next scheduled tick.",
	})
)
