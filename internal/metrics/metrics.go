// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Notion API Metrics
	NotionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notion_requests_total",
			Help: "Total number of Notion API calls by operation and HTTP status",
		},
		[]string{"operation", "status"},
	)

	NotionRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notion_request_duration_seconds",
			Help:    "Notion API call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"operation"},
	)

	NotionRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notion_rate_limited_total",
			Help: "Total number of HTTP 429 responses from Notion",
		},
	)

	NotionPagesFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notion_pages_fetched_total",
			Help: "Total number of database result pages fetched",
		},
		[]string{"database"},
	)

	// Sync Operation Metrics
	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sync_duration_seconds",
			Help:    "Duration of data sync operations in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	SyncErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_errors_total",
			Help: "Total number of failed sync operations",
		},
		[]string{"error_type"},
	)

	SyncLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sync_last_success_timestamp",
			Help: "Unix timestamp of the last successful sync",
		},
	)

	ToolsBySource = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "directory_tools",
			Help: "Number of tools served, by record source",
		},
		[]string{"source"},
	)

	DataFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "data_fallbacks_total",
			Help: "Total number of times a dataset was served from a fallback tier",
		},
		[]string{"dataset", "reason"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total requests through the circuit breaker by result",
		},
		[]string{"name", "result"},
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Ad Metrics
	AdImpressions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ad_impressions_total",
			Help: "Total number of ad placements served",
		},
		[]string{"slot", "ad_id"},
	)

	AdClicks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ad_clicks_total",
			Help: "Total number of ad click redirects",
		},
		[]string{"ad_id"},
	)

	// Store Metrics
	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_gc_runs_total",
			Help: "Total number of snapshot store value-log GC runs by result",
		},
		[]string{"result"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordNotionRequest records one Notion API call. status is the HTTP status
// code, or "error" when no response was received.
func RecordNotionRequest(operation, status string, duration time.Duration) {
	NotionRequestsTotal.WithLabelValues(operation, status).Inc()
	NotionRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordSyncOperation records a sync run. Errors are labelled with
// ClassifySyncError.
func RecordSyncOperation(duration time.Duration, err error) {
	SyncDuration.Observe(duration.Seconds())
	if err != nil {
		SyncErrors.WithLabelValues(ClassifySyncError(err)).Inc()
		return
	}
	SyncLastSuccess.Set(float64(time.Now().Unix()))
}

// SyncErrorClassifier lets error types name their own metric label.
type SyncErrorClassifier interface {
	MetricLabel() string
}

// ClassifySyncError maps err to a low-cardinality label.
func ClassifySyncError(err error) string {
	var c SyncErrorClassifier
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &c):
		return c.MetricLabel()
	default:
		return "other"
	}
}

// SetToolCounts replaces the per-source tool gauges.
func SetToolCounts(counts map[string]int) {
	ToolsBySource.Reset()
	for source, n := range counts {
		ToolsBySource.WithLabelValues(source).Set(float64(n))
	}
}

// RecordFallback records that dataset was served from a fallback tier.
func RecordFallback(dataset, reason string) {
	DataFallbacks.WithLabelValues(dataset, reason).Inc()
}

// CacheObserver returns a lookup observer that counts hits and misses for
// the named cache.
func CacheObserver(name string) func(hit bool) {
	hits := CacheHits.WithLabelValues(name)
	misses := CacheMisses.WithLabelValues(name)
	return func(hit bool) {
		if hit {
			hits.Inc()
		} else {
			misses.Inc()
		}
	}
}

// RecordAdImpression records an ad served into a slot.
func RecordAdImpression(slot, adID string) {
	AdImpressions.WithLabelValues(slot, adID).Inc()
}

// RecordAdClick records an ad click redirect.
func RecordAdClick(adID string) {
	AdClicks.WithLabelValues(adID).Inc()
}

// RecordStoreGC records a value-log GC pass.
func RecordStoreGC(err error) {
	if err != nil {
		StoreGCRuns.WithLabelValues("error").Inc()
		return
	}
	StoreGCRuns.WithLabelValues("ok").Inc()
}
