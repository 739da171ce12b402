package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jmfancher/weather-widget-service/internal/models"
	"github.com/jmfancher/weather-widget-service/internal/observability"
)

// Searcher is implemented by the service layer to resolve a city search
// without publishing it as the latest result. Declared here to avoid a
// circular dependency on the service package.
type Searcher interface {
	Lookup(ctx context.Context, city string) (models.SearchResult, error)
}

// Warmer warms the cache by prefetching results for a list of cities.
type Warmer struct {
	searcher Searcher
	logger   *zap.Logger
}

// NewWarmer creates a Warmer that uses the given searcher and logger.
func NewWarmer(searcher Searcher, logger *zap.Logger) *Warmer {
	return &Warmer{searcher: searcher, logger: logger}
}

// Warm runs a search for each city concurrently, populating the cache via the
// searcher. Returns an error if any city failed (aggregated).
func (w *Warmer) Warm(ctx context.Context, cities []string) error {
	start := time.Now()
	observability.CacheWarmingTotal.Inc()
	if w.logger != nil {
		w.logger.Info("warming cache", zap.Int("cities", len(cities)))
	}
	var wg sync.WaitGroup
	errCh := make(chan error, len(cities))
	for _, city := range cities {
		city := city
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := w.searcher.Lookup(ctx, city)
			if err != nil {
				errCh <- fmt.Errorf("warm %s: %w", city, err)
			}
		}()
	}
	wg.Wait()
	close(errCh)
	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	duration := time.Since(start).Seconds()
	observability.CacheWarmingDurationSeconds.Observe(duration)
	if w.logger != nil {
		w.logger.Info("cache warming complete", zap.Int("cities", len(cities)), zap.Int("errors", len(errs)), zap.Float64("duration_seconds", duration))
	}
	if len(errs) > 0 {
		observability.CacheWarmingErrorsTotal.Inc()
		return fmt.Errorf("cache warming: %v", errs)
	}
	return nil
}

// WarmPeriodic runs an initial Warm, then refreshes at the given interval until ctx is done.
func (w *Warmer) WarmPeriodic(ctx context.Context, cities []string, interval time.Duration) error {
	if err := w.Warm(ctx, cities); err != nil && w.logger != nil {
		w.logger.Warn("initial cache warm failed", zap.Error(err))
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Warm(ctx, cities); err != nil && w.logger != nil {
				w.logger.Warn("periodic cache warm failed", zap.Error(err))
			}
		}
	}
}
