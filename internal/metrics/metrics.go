// Package metrics exposes the Prometheus instrumentation of the catalog
// service: store latency, HTTP traffic, views and catalog writes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/youtube-seguro/video-catalog-go/internal/db"
)

var (
	// Store Metrics
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_store_query_duration_seconds",
			Help:    "Duration of catalog store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_store_errors_total",
			Help: "Total number of catalog store errors by kind",
		},
		[]string{"operation", "kind"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Catalog Metrics
	ViewsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_views_total",
			Help: "Total number of views registered",
		},
	)

	VideosCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_videos_created_total",
			Help: "Total number of videos added to the catalog",
		},
	)

	VideosDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_videos_deleted_total",
			Help: "Total number of videos removed from the catalog",
		},
	)

	ModerationRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_moderation_rejections_total",
			Help: "Total number of videos rejected for containing a blocked term",
		},
	)

	BlockedTermCacheFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_blocked_term_cache_fallbacks_total",
			Help: "Total number of blocked term lookups served from the store after a cache error",
		},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_events_published_total",
			Help: "Total number of catalog events published by type and result",
		},
		[]string{"type", "result"},
	)
)

// RecordStoreQuery records the latency of a store operation and, on failure,
// its error kind.
func RecordStoreQuery(operation string, duration time.Duration, err error) {
	StoreQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreQueryErrors.WithLabelValues(operation, db.Kind(err)).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordEventPublish counts a publish attempt for one event type.
func RecordEventPublish(eventType string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	EventsPublished.WithLabelValues(eventType, result).Inc()
}
