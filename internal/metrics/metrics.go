// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Remote call outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
	OutcomeConfig   = "config"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Remote collection calls, op is one of list, get, insert, update, delete.
	ObserveRemoteCall(op, outcome string, duration time.Duration)

	// Creator mutations
	IncCreatorCreated()
	IncCreatorUpdated()
	IncCreatorDeleted()

	// List refreshes requested after mutations
	IncListRefresh()

	// Form submissions rejected by the rate limiter
	IncRateLimited()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
