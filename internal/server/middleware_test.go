package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestRequestID verifies that each request gets a parseable UUID, exposed
// both as a response header and through the request context.
func TestRequestID(t *testing.T) {
	var fromCtx string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = requestIDFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	header := rec.Header().Get("X-Request-ID")
	if _, err := uuid.Parse(header); err != nil {
		t.Errorf("X-Request-ID = %q, not a UUID: %v", header, err)
	}
	if fromCtx != header {
		t.Errorf("context id %q != header id %q", fromCtx, header)
	}
}

// TestRequestIDFromContextDefault verifies the fallback when no middleware
// ran.
func TestRequestIDFromContextDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := requestIDFromContext(req); id != "" {
		t.Errorf("requestIDFromContext = %q, want empty", id)
	}
}

// TestRequestTimeout verifies that handlers observe a context deadline.
func TestRequestTimeout(t *testing.T) {
	var hasDeadline bool
	handler := RequestTimeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !hasDeadline {
		t.Error("request context has no deadline")
	}
}

// TestCORSPreflight verifies that OPTIONS requests short-circuit with 204
// and the expected headers.
func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not run for preflight")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/summary", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

// TestRequestLoggingStatusCapture verifies the status writer records what
// the handler wrote.
func TestRequestLoggingStatusCapture(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := RequestLogging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
}
