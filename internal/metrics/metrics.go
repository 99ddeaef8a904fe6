// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "margen_http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "margen_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// FeedFetches counts upstream fetches; result is ok | error | fallback.
	FeedFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "margen_feed_fetches_total",
		Help: "Price board and exchange rate fetches by outcome.",
	}, []string{"feed", "result"})

	// CacheLookups counts Redis cache lookups; result is hit | miss | error.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "margen_cache_lookups_total",
		Help: "Redis cache lookups by cache and outcome.",
	}, []string{"cache", "result"})

	Calculos = promauto.NewCounter(prometheus.CounterOpts{
		Name: "margen_calculos_total",
		Help: "Margin calculations executed (cache misses included, hits excluded).",
	})
)
