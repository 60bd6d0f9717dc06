package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/creatorverse/creatorverse/internal/metrics"
	"github.com/creatorverse/creatorverse/internal/remote"
	"github.com/creatorverse/creatorverse/internal/store"
	"github.com/creatorverse/creatorverse/internal/testutil"
	"github.com/creatorverse/creatorverse/internal/view"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newBaseHandler(t *testing.T) *Handler {
	t.Helper()
	renderer, err := view.New()
	if err != nil {
		t.Fatalf("view.New() error = %v", err)
	}
	return New(renderer, quietLogger())
}

// newTestRouter wires the page routes over fake the way cmd/web does.
func newTestRouter(t *testing.T, fake *testutil.FakeCollection) (*chi.Mux, *store.Store) {
	t.Helper()

	h := newBaseHandler(t)
	s := store.New(fake, quietLogger(), metrics.NewNoop())
	creators := NewCreatorHandler(h, fake, s)

	r := chi.NewRouter()
	creators.Routes(r)
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)
	return r, s
}

func TestHandler_NotFound(t *testing.T) {
	t.Parallel()

	h := newBaseHandler(t)
	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("expected HTML content type, got %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "Page Not Found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t, testutil.NewFakeCollection())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "DELETE") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandler_InternalError(t *testing.T) {
	t.Parallel()

	h := newBaseHandler(t)
	rec := httptest.NewRecorder()
	h.InternalError(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
}

func TestHandler_TooManyRequests(t *testing.T) {
	t.Parallel()

	h := newBaseHandler(t)
	rec := httptest.NewRecorder()
	h.TooManyRequests(rec, httptest.NewRequest(http.MethodPost, "/add", nil))

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Too many submissions") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func newStoreOver(collection remote.Collection) *store.Store {
	return store.New(collection, quietLogger(), nil)
}
