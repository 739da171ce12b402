package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jmfancher/weather-widget-service/internal/cache"
	"github.com/jmfancher/weather-widget-service/internal/client"
	"github.com/jmfancher/weather-widget-service/internal/forecast"
	"github.com/jmfancher/weather-widget-service/internal/models"
	"github.com/jmfancher/weather-widget-service/internal/observability"
)

// SearchService orchestrates a city search: geocode, forecast fetch, and
// windowing, with a cache-aside result cache in front. Each search is a
// strictly sequential two-step round trip; the forecast call is never issued
// when geocoding fails or finds nothing.
type SearchService struct {
	geocoder client.Geocoder
	fetcher  client.ForecastFetcher
	cache    cache.Cache
	ttl      time.Duration
	latest   *latestStore
}

// NewSearchService creates a SearchService with the provided dependencies.
// ttl specifies the cache expiration duration for search results.
func NewSearchService(geocoder client.Geocoder, fetcher client.ForecastFetcher, resultCache cache.Cache, ttl time.Duration) *SearchService {
	return &SearchService{
		geocoder: geocoder,
		fetcher:  fetcher,
		cache:    resultCache,
		ttl:      ttl,
		latest:   newLatestStore(),
	}
}

// loggerFromContext extracts a zap.Logger from request context if present.
// Returns nil if logger is not found or context is invalid.
func loggerFromContext(ctx context.Context) *zap.Logger {
	if v := ctx.Value("logger"); v != nil {
		if l, ok := v.(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return nil
}

// Search runs a full search and, on success, publishes the result into the
// latest-result slot. Each call claims a generation; a result whose
// generation is stale by publish time (a newer search started meanwhile) is
// still returned to the caller but does not replace the latest result.
func (s *SearchService) Search(ctx context.Context, city string) (models.SearchResult, error) {
	gen := s.latest.NextGeneration()
	result, err := s.Lookup(ctx, city)
	if err != nil {
		observability.SearchErrorsTotal.WithLabelValues(string(client.CategorizeError(err))).Inc()
		return models.SearchResult{}, err
	}
	if !s.latest.Publish(gen, result) {
		observability.StaleResultsDiscardedTotal.Inc()
		if logger := loggerFromContext(ctx); logger != nil {
			logger.Debug("stale search result discarded", zap.String("city", result.City), zap.Uint64("generation", gen))
		}
	}
	return result, nil
}

// Latest returns the most recent successfully published search result.
func (s *SearchService) Latest() (models.SearchResult, bool) {
	return s.latest.Get()
}

// Lookup resolves a search without touching the latest-result slot. Used by
// Search and by cache warming. Checks the cache first; on a miss it geocodes,
// fetches the forecast, windows it, and populates the cache.
func (s *SearchService) Lookup(ctx context.Context, city string) (models.SearchResult, error) {
	key := normalizeCity(city)
	start := time.Now()
	logger := loggerFromContext(ctx)

	observability.RecordSearch(key)

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		observability.CacheErrorsTotal.WithLabelValues("get", categorizeCacheError(err)).Inc()
	} else if ok {
		observability.CacheHitsTotal.WithLabelValues("search").Inc()
		if logger != nil {
			logger.Debug("cache hit", zap.String("city", key))
			logger.Debug("search served", zap.String("city", key), zap.Bool("cached", true), zap.Duration("duration", time.Since(start)))
		}
		return cached, nil
	}

	if logger != nil {
		logger.Debug("cache miss, resolving upstream", zap.String("city", key))
	}

	loc, err := s.geocoder.Resolve(ctx, key)
	if err != nil {
		return models.SearchResult{}, fmt.Errorf("geocode %s: %w", key, err)
	}

	bundle, err := s.fetcher.Fetch(ctx, loc)
	if err != nil {
		return models.SearchResult{}, fmt.Errorf("fetch forecast for %s: %w", key, err)
	}

	current, samples, err := forecast.Build(bundle)
	if err != nil {
		return models.SearchResult{}, fmt.Errorf("%w: %v", client.ErrFetchFailed, err)
	}

	result := models.SearchResult{
		City:      key,
		Location:  loc,
		Current:   current,
		Forecast:  samples,
		FetchedAt: time.Now().UTC(),
	}

	if setErr := s.cache.Set(ctx, key, result, s.ttl); setErr != nil {
		observability.CacheErrorsTotal.WithLabelValues("set", categorizeCacheError(setErr)).Inc()
		if logger != nil {
			logger.Warn("cache set failed", zap.String("city", key), zap.Error(setErr))
		}
	}
	if logger != nil {
		logger.Debug("search served", zap.String("city", key), zap.Bool("cached", false), zap.Duration("duration", time.Since(start)))
	}
	return result, nil
}

// categorizeCacheError returns a stable label for cache error metrics (timeout, connection, unknown).
func categorizeCacheError(err error) string {
	if err == nil {
		return "unknown"
	}
	errStr := err.Error()
	if strings.Contains(errStr, "timeout") {
		return "timeout"
	}
	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") {
		return "connection"
	}
	return "unknown"
}

// normalizeCity normalizes city names by trimming whitespace and converting
// to lowercase. Ensures consistent cache keys and API requests regardless of
// input format.
func normalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
