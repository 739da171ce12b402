package http

import (
	"context"
	"sync/atomic"
	"time"
)

// InFlightTracker counts requests currently being served so shutdown can
// drain them before the process exits.
type InFlightTracker struct {
	n atomic.Int64
}

// Increment records a request entering the handler chain.
func (t *InFlightTracker) Increment() {
	t.n.Add(1)
}

// Decrement records a request leaving the handler chain.
func (t *InFlightTracker) Decrement() {
	t.n.Add(-1)
}

// Count returns the number of requests currently in flight.
func (t *InFlightTracker) Count() int64 {
	return t.n.Load()
}

// WaitForZero polls the count every checkInterval until it reaches zero or
// ctx expires.
func (t *InFlightTracker) WaitForZero(ctx context.Context, checkInterval time.Duration) error {
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()
	for t.Count() != 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// MetricsMiddleware feeds the process-wide tracker; the shutdown path in
// cmd/service drains it.
var globalInFlightTracker = &InFlightTracker{}

// InFlightCount reports the process-wide in-flight request count.
func InFlightCount() int64 {
	return globalInFlightTracker.Count()
}

// WaitForInFlight blocks until all in-flight requests complete or ctx is done.
func WaitForInFlight(ctx context.Context, checkInterval time.Duration) error {
	return globalInFlightTracker.WaitForZero(ctx, checkInterval)
}
