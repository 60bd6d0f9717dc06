// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/creatorverse/creatorverse/internal/middleware"
	"github.com/creatorverse/creatorverse/internal/view"
)

// Handler renders HTML pages and the shared error pages.
type Handler struct {
	renderer *view.Renderer
	logger   *slog.Logger
}

// New creates a new Handler instance.
func New(renderer *view.Renderer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{renderer: renderer, logger: logger}
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, view.NotFoundTemplate, view.Page{
		Title:   "Page Not Found",
		Content: view.NotFound{Path: r.URL.Path},
	})
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusMethodNotAllowed, "This page does not accept "+r.Method+" requests.")
}

// InternalError renders the 500 page. It is used after a recovered panic.
func (h *Handler) InternalError(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusInternalServerError, "Something went wrong on our side.")
}

// TooManyRequests renders the 429 page for rate limited form submissions.
func (h *Handler) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusTooManyRequests, "Too many submissions. Please wait a moment and try again.")
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.render(w, r, status, view.ErrorTemplate, view.Page{
		Title:   http.StatusText(status),
		Content: view.Error{Status: status, Message: msg},
	})
}

// render writes one page. A template failure is logged and degrades to a
// plain 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data view.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	rw := &deferredWriter{ResponseWriter: w, status: status}
	if err := h.renderer.Render(rw, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page",
			slog.String("template", name),
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		if !rw.wrote {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// deferredWriter sends the status code with the first body write, so a
// failed render can still choose its own status.
type deferredWriter struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (d *deferredWriter) Write(b []byte) (int, error) {
	if !d.wrote {
		d.wrote = true
		d.ResponseWriter.WriteHeader(d.status)
	}
	return d.ResponseWriter.Write(b)
}

// redirect moves the browser with a 303 so a refreshed page never resubmits
// a form.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
