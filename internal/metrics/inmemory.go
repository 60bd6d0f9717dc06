package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// RemoteCallKey identifies a remote call counter.
type RemoteCallKey struct {
	Op      string
	Outcome string
}

// RemoteCallStats aggregates calls for one key.
type RemoteCallStats struct {
	Count           uint64
	DurationTotalNs int64
}

// Snapshot captures current in-memory counters.
type Snapshot struct {
	RemoteCalls     map[RemoteCallKey]RemoteCallStats
	CreatorsCreated uint64
	CreatorsUpdated uint64
	CreatorsDeleted uint64
	ListRefreshes   uint64
	RateLimited     uint64
}

// SortedRemoteCallKeys returns the remote call keys in a stable order.
func (s Snapshot) SortedRemoteCallKeys() []RemoteCallKey {
	keys := make([]RemoteCallKey, 0, len(s.RemoteCalls))
	for k := range s.RemoteCalls {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Op != keys[j].Op {
			return keys[i].Op < keys[j].Op
		}
		return keys[i].Outcome < keys[j].Outcome
	})
	return keys
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	mu          sync.Mutex
	remoteCalls map[RemoteCallKey]RemoteCallStats

	creatorsCreated uint64
	creatorsUpdated uint64
	creatorsDeleted uint64
	listRefreshes   uint64
	rateLimited     uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{remoteCalls: make(map[RemoteCallKey]RemoteCallStats)}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	calls := make(map[RemoteCallKey]RemoteCallStats, len(m.remoteCalls))
	for k, v := range m.remoteCalls {
		calls[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		RemoteCalls:     calls,
		CreatorsCreated: atomic.LoadUint64(&m.creatorsCreated),
		CreatorsUpdated: atomic.LoadUint64(&m.creatorsUpdated),
		CreatorsDeleted: atomic.LoadUint64(&m.creatorsDeleted),
		ListRefreshes:   atomic.LoadUint64(&m.listRefreshes),
		RateLimited:     atomic.LoadUint64(&m.rateLimited),
	}
}

// ObserveRemoteCall records one remote call.
func (m *InMemoryRecorder) ObserveRemoteCall(op, outcome string, duration time.Duration) {
	key := RemoteCallKey{Op: op, Outcome: outcome}

	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.remoteCalls[key]
	stats.Count++
	stats.DurationTotalNs += duration.Nanoseconds()
	m.remoteCalls[key] = stats
}

// IncCreatorCreated increments creator created counter.
func (m *InMemoryRecorder) IncCreatorCreated() {
	atomic.AddUint64(&m.creatorsCreated, 1)
}

// IncCreatorUpdated increments creator updated counter.
func (m *InMemoryRecorder) IncCreatorUpdated() {
	atomic.AddUint64(&m.creatorsUpdated, 1)
}

// IncCreatorDeleted increments creator deleted counter.
func (m *InMemoryRecorder) IncCreatorDeleted() {
	atomic.AddUint64(&m.creatorsDeleted, 1)
}

// IncListRefresh increments the list refresh counter.
func (m *InMemoryRecorder) IncListRefresh() {
	atomic.AddUint64(&m.listRefreshes, 1)
}

// IncRateLimited increments the rate limited counter.
func (m *InMemoryRecorder) IncRateLimited() {
	atomic.AddUint64(&m.rateLimited, 1)
}
