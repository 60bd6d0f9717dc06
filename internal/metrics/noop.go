package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// ObserveRemoteCall is a no-op.
func (n *NoopRecorder) ObserveRemoteCall(op, outcome string, duration time.Duration) {}

// IncCreatorCreated is a no-op.
func (n *NoopRecorder) IncCreatorCreated() {}

// IncCreatorUpdated is a no-op.
func (n *NoopRecorder) IncCreatorUpdated() {}

// IncCreatorDeleted is a no-op.
func (n *NoopRecorder) IncCreatorDeleted() {}

// IncListRefresh is a no-op.
func (n *NoopRecorder) IncListRefresh() {}

// IncRateLimited is a no-op.
func (n *NoopRecorder) IncRateLimited() {}
