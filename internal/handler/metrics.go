package handler

import (
	"fmt"
	"net/http"

	"github.com/creatorverse/creatorverse/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
//
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	for _, k := range snap.SortedRemoteCallKeys() {
		stats := snap.RemoteCalls[k]
		writeMetric(w, "creatorverse_remote_calls_total{op=%q,outcome=%q} %d\n", k.Op, k.Outcome, stats.Count)
		writeMetric(w, "creatorverse_remote_call_duration_seconds_sum{op=%q,outcome=%q} %.6f\n", k.Op, k.Outcome, float64(stats.DurationTotalNs)/1e9)
	}

	writeMetric(w, "creatorverse_creators_created_total %d\n", snap.CreatorsCreated)
	writeMetric(w, "creatorverse_creators_updated_total %d\n", snap.CreatorsUpdated)
	writeMetric(w, "creatorverse_creators_deleted_total %d\n", snap.CreatorsDeleted)
	writeMetric(w, "creatorverse_list_refreshes_total %d\n", snap.ListRefreshes)
	writeMetric(w, "creatorverse_form_rate_limited_total %d\n", snap.RateLimited)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
