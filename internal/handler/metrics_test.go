package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/creatorverse/creatorverse/internal/metrics"
)

func TestMetricsHandler(t *testing.T) {
	t.Parallel()

	rec := metrics.NewInMemory()
	rec.ObserveRemoteCall("list", metrics.OutcomeOK, 20*time.Millisecond)
	rec.ObserveRemoteCall("get", metrics.OutcomeNotFound, 5*time.Millisecond)
	rec.IncCreatorCreated()
	rec.IncListRefresh()

	resp := httptest.NewRecorder()
	NewMetricsHandler(rec).Metrics(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := resp.Body.String()
	for _, want := range []string{
		`creatorverse_remote_calls_total{op="list",outcome="ok"} 1`,
		`creatorverse_remote_calls_total{op="get",outcome="not_found"} 1`,
		`creatorverse_remote_call_duration_seconds_sum{op="list",outcome="ok"} 0.020000`,
		"creatorverse_creators_created_total 1",
		"creatorverse_list_refreshes_total 1",
		"creatorverse_form_rate_limited_total 0",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q:\n%s", want, body)
		}
	}

	if strings.Index(body, `op="get"`) > strings.Index(body, `op="list"`) {
		t.Error("remote call series not sorted by op")
	}
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	t.Parallel()

	resp := httptest.NewRecorder()
	NewMetricsHandler(nil).Metrics(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", resp.Code)
	}
}
