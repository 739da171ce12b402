// Package lifecycle exposes the process drain state. The signal handler in
// cmd/service flips it; the health endpoint reports it so load balancers stop
// routing new requests during shutdown.
package lifecycle

import "sync/atomic"

var draining atomic.Bool

// SetShuttingDown marks the process as draining (or clears the mark).
func SetShuttingDown(v bool) {
	draining.Store(v)
}

// IsShuttingDown reports whether the process is draining.
func IsShuttingDown() bool {
	return draining.Load()
}
