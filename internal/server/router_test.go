package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/fridge-inventory/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type pingHandler struct{}

func (pingHandler) MountRoutes(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouterMountsUnderAPI(t *testing.T) {
	h := NewRouter(RouterConfig{Logger: logger.NewNop()}, pingHandler{})

	w := get(h, "/api/ping")
	require.Equal(t, http.StatusTeapot, w.Code)
	require.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	require.Equal(t, http.StatusNotFound, get(h, "/ping").Code)
	require.Equal(t, http.StatusInternalServerError, get(h, "/api/boom").Code)
}

func TestHealthz(t *testing.T) {
	healthy := NewRouter(RouterConfig{Logger: logger.NewNop()})
	w := get(healthy, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	down := NewRouter(RouterConfig{
		Logger: logger.NewNop(),
		Ready:  func(context.Context) error { return errors.New("sql: database is closed") },
	})
	w = get(down, "/healthz")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())
}

func TestRateLimit(t *testing.T) {
	h := NewRouter(RouterConfig{Logger: logger.NewNop(), RateLimit: 2}, pingHandler{})

	require.Equal(t, http.StatusTeapot, get(h, "/api/ping").Code)
	require.Equal(t, http.StatusTeapot, get(h, "/api/ping").Code)
	require.Equal(t, http.StatusTooManyRequests, get(h, "/api/ping").Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewRouter(RouterConfig{Logger: logger.Wrap(zap.New(core))}, pingHandler{})

	get(h, "/api/ping")
	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "/api/ping", fields["path"])
	require.Equal(t, int64(http.StatusTeapot), fields["status"])
	require.NotEmpty(t, fields["request_id"])
}
