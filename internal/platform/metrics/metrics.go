// Package metrics declares the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinemacompanion_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemacompanion_recommendations_served_total",
			Help: "Recommendation lists served, by variant",
		},
		[]string{"variant"}, // "rating", "scored"
	)

	RecommendationResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinemacompanion_recommendation_result_size",
			Help:    "Number of items in served recommendation lists",
			Buckets: []float64{0, 1, 2, 4, 6, 8},
		},
		[]string{"variant"},
	)

	DocumentaryLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemacompanion_documentary_loads_total",
			Help: "Documentary list loads, by outcome",
		},
		[]string{"outcome"}, // "stored", "fetched", "fallback"
	)

	RateLimitedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinemacompanion_rate_limited_requests_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinemacompanion_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)
