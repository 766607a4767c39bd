package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registerOnce       sync.Once
	registry           *prometheus.Registry
	rateLimitedTotal   *prometheus.CounterVec
	httpRequestsTotal  *prometheus.CounterVec
	httpLatencySeconds *prometheus.HistogramVec
	httpErrorsTotal    *prometheus.CounterVec
	simulationsTotal   *prometheus.CounterVec
	simulationScores   prometheus.Histogram
	simulationCache    *prometheus.CounterVec
)

// RegisterMetrics initialises the service registry and the collectors exposed on /metrics.
func RegisterMetrics() {
	registerOnce.Do(func() {
		registry = prometheus.NewRegistry()

		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creditsim_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "creditsim_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creditsim_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		simulationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creditsim_simulations_total",
			Help: "Simulation attempts by outcome (risk category, invalid or error).",
		}, []string{"outcome"})

		simulationScores = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "creditsim_simulation_score",
			Help:    "Distribution of computed credit scores.",
			Buckets: prometheus.LinearBuckets(300, 50, 12),
		})

		simulationCache = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creditsim_simulation_cache_total",
			Help: "Simulation cache lookups by result.",
		}, []string{"result"})

		rateLimitedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creditsim_rate_limited_total",
			Help: "Requests rejected by a rate limit policy.",
		}, []string{"policy"})

		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			rateLimitedTotal,
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			simulationsTotal,
			simulationScores,
			simulationCache,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// Simulations exposes the simulation outcome counter.
func Simulations() *prometheus.CounterVec {
	RegisterMetrics()
	return simulationsTotal
}

// SimulationScores exposes the score histogram.
func SimulationScores() prometheus.Histogram {
	RegisterMetrics()
	return simulationScores
}

// SimulationCache exposes the cache hit/miss counter.
func SimulationCache() *prometheus.CounterVec {
	RegisterMetrics()
	return simulationCache
}

// RateLimited exposes the counter of requests rejected by a limiter policy.
func RateLimited() *prometheus.CounterVec {
	RegisterMetrics()
	return rateLimitedTotal
}

// Registry returns the registry holding every service collector.
func Registry() *prometheus.Registry {
	RegisterMetrics()
	return registry
}
