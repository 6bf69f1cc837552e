package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(h http.HandlerFunc) *chi.Mux {
	logger := log.New()
	logger.SetOutput(io.Discard)

	mux := chi.NewRouter()
	mux.Use(MetricsMiddleware)
	mux.Use(RequestIDLoggerMiddleware(logger))
	mux.Get("/probe", h)
	return mux
}

func TestRequestIDLoggerMiddleware(t *testing.T) {
	var seen string
	mux := newTestMux(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("x-request-id", "req-1")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", rec.Header().Get("x-request-id"))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Len(t, rec.Header().Get("x-request-id"), 36)
}

func TestRequestIDLoggerMiddlewarePreflight(t *testing.T) {
	called := false
	mux := newTestMux(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/probe", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.False(t, called)
}

func TestRequestIDLoggerMiddlewareRecoversPanics(t *testing.T) {
	mux := newTestMux(func(w http.ResponseWriter, r *http.Request) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("x-request-id", "req-panic")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"error": "internal server error", "request_id": "req-panic"}, body)
}

func TestRequestIDOutsideMiddleware(t *testing.T) {
	assert.Empty(t, RequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
