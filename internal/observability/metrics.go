package observability

import (
	"net/http"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// HTTP request rate. Watch for: sudden drops (service down) or spikes (traffic surge).
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per request. Watch for: p95/p99 latency increases, SLO breaches.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight. Watch for: saturation, capacity limits.
	HTTPRequestsInFlight prometheus.Gauge

	// Open-Meteo API call rate, labeled by endpoint (geocode|forecast). Watch for: error vs success ratio.
	UpstreamCallsTotal *prometheus.CounterVec

	// Open-Meteo API latency per call. Watch for: p95 > 2s (upstream degradation), p99 > 5s (timeout risk).
	UpstreamDuration *prometheus.HistogramVec

	// Cache hits. Hit rate = hits/(hits+searchesTotal-hits) per cacheType.
	CacheHitsTotal *prometheus.CounterVec

	// Cache backend failures by operation (get|set) and category.
	CacheErrorsTotal *prometheus.CounterVec

	// Total city searches. Watch for: traffic volume, rate() for QPS.
	SearchesTotal prometheus.Counter

	// Per-city search count (allow-list; others go to "other"). Watch for: top cities, traffic distribution.
	SearchesByCityTotal *prometheus.CounterVec

	// Failed searches by error category. Watch for: upstream vs not-found mix.
	SearchErrorsTotal *prometheus.CounterVec

	// Completed searches discarded because a newer search had already started.
	StaleResultsDiscardedTotal prometheus.Counter

	// Rate limit denials. Watch for: overload, capacity exceeded.
	RateLimitDeniedTotal prometheus.Counter

	// Cache warming runs, failures and duration.
	CacheWarmingTotal           prometheus.Counter
	CacheWarmingErrorsTotal     prometheus.Counter
	CacheWarmingDurationSeconds prometheus.Histogram

	// trackedCities is built from config; used to resolve the city label for metrics.
	trackedCitiesMu sync.RWMutex
	trackedCities   map[string]struct{}
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	UpstreamCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstreamApiCallsTotal",
			Help: "Total number of Open-Meteo API calls",
		},
		[]string{"endpoint", "status"},
	)
	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstreamApiDurationSeconds",
			Help:    "Open-Meteo API latency in seconds (per call)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "status"},
	)
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cacheHitsTotal",
			Help: "Total number of result cache hits",
		},
		[]string{"cacheType"},
	)
	CacheErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cacheErrorsTotal",
			Help: "Cache backend failures by operation and category",
		},
		[]string{"operation", "category"},
	)
	SearchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "searchesTotal",
			Help: "Total number of city searches",
		},
	)
	SearchesByCityTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchesByCityTotal",
			Help: "City searches by city (allow-list; others use city=other)",
		},
		[]string{"city"},
	)
	SearchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchErrorsTotal",
			Help: "Failed city searches by error category",
		},
		[]string{"category"},
	)
	StaleResultsDiscardedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staleResultsDiscardedTotal",
			Help: "Search results discarded because a newer search had started",
		},
	)
	RateLimitDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rateLimitDeniedTotal",
			Help: "Total number of requests denied by rate limiter (429)",
		},
	)
	CacheWarmingTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cacheWarmingTotal",
			Help: "Cache warming runs",
		},
	)
	CacheWarmingErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cacheWarmingErrorsTotal",
			Help: "Cache warming runs with at least one failed city",
		},
	)
	CacheWarmingDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cacheWarmingDurationSeconds",
			Help:    "Cache warming duration in seconds",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 30},
		},
	)

	registry.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight,
		UpstreamCallsTotal, UpstreamDuration,
		CacheHitsTotal, CacheErrorsTotal,
		SearchesTotal, SearchesByCityTotal, SearchErrorsTotal,
		StaleResultsDiscardedTotal,
		RateLimitDeniedTotal,
		CacheWarmingTotal, CacheWarmingErrorsTotal, CacheWarmingDurationSeconds,
	)
}

// SetTrackedCities sets the allow-list for city metrics. Non-tracked cities increment "other".
func SetTrackedCities(cities []string) {
	trackedCitiesMu.Lock()
	defer trackedCitiesMu.Unlock()
	trackedCities = make(map[string]struct{}, len(cities))
	for _, c := range cities {
		trackedCities[normalizeCityForMetrics(c)] = struct{}{}
	}
}

// RecordSearch records a city search for the given city.
func RecordSearch(city string) {
	SearchesTotal.Inc()
	SearchesByCityTotal.WithLabelValues(MetricCityLabel(city)).Inc()
}

// MetricCityLabel maps a city to its metric label: the normalized city when
// tracked, "other" otherwise. Keeps label cardinality bounded.
func MetricCityLabel(city string) string {
	c := normalizeCityForMetrics(city)
	trackedCitiesMu.RLock()
	_, ok := trackedCities[c] // nil map read is safe in Go
	trackedCitiesMu.RUnlock()
	if ok {
		return c
	}
	return "other"
}

func normalizeCityForMetrics(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return s
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
