package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the pick'em backend

var (
	// Provider metrics
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickem_provider_calls_total",
			Help: "Total number of external provider API calls",
		},
		[]string{"provider", "status"},
	)

	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pickem_provider_call_duration_seconds",
			Help:    "Duration of provider API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	// Sync metrics
	SyncOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickem_sync_operations_total",
			Help: "Total number of sync operations",
		},
		[]string{"type", "status"},
	)

	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pickem_sync_duration_seconds",
			Help:    "Duration of sync operations in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"type"},
	)

	KickoffCorrectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickem_kickoff_corrections_total",
			Help: "Total number of kickoff corrections applied",
		},
		[]string{"source"},
	)

	GamesSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickem_reconcile_skips_total",
			Help: "Games skipped during reconciliation, by reason",
		},
		[]string{"reason"},
	)

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickem_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pickem_cache_hits_total",
			Help: "Total number of leaderboard cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pickem_cache_misses_total",
			Help: "Total number of leaderboard cache misses",
		},
	)
)
