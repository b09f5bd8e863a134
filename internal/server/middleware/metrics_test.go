package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fulmenhq/gofulmen/telemetry"
	telemetrytesting "github.com/fulmenhq/gofulmen/telemetry/testing"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchslap/pitchslap/internal/observability"
)

func setupTelemetry(t *testing.T) *telemetrytesting.FakeCollector {
	t.Helper()

	collector := telemetrytesting.NewFakeCollector()
	sys, err := telemetry.NewSystem(&telemetry.Config{
		Enabled: true,
		Emitter: collector,
	})
	require.NoError(t, err)

	original := observability.TelemetrySystem
	observability.TelemetrySystem = sys
	t.Cleanup(func() {
		observability.TelemetrySystem = original
	})
	return collector
}

func TestRequestMetricsEmitsCoreSeries(t *testing.T) {
	collector := setupTelemetry(t)

	handler := RequestMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("🔥 Roast:\nnice try"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pitch/roast", strings.NewReader(`{"pitch":"x"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	for _, name := range []string{
		"http_requests_total",
		"http_request_duration_ms",
		"http_request_size_bytes",
		"http_response_size_bytes",
	} {
		assert.Greater(t, collector.CountMetricsByName(name), 0, name)
	}
	assert.Equal(t, 0, collector.CountMetricsByName("http_errors_total"))
}

func TestRequestMetricsWithTelemetryDisabled(t *testing.T) {
	original := observability.TelemetrySystem
	observability.TelemetrySystem = nil
	defer func() { observability.TelemetrySystem = original }()

	handler := RequestMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRequestMetricsCountsErrors(t *testing.T) {
	collector := setupTelemetry(t)

	handler := RequestMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/pitch/haiku", nil))
	assert.Greater(t, collector.CountMetricsByName("http_errors_total"), 0)
}

func TestEndpointPatternFallbacks(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/health", "/health/*"},
		{"/health/ready", "/health/*"},
		{"/version", "/version"},
		{"/metrics", "/metrics"},
		{"/api/v1/players/123", "/api/*"},
		{"/wp-admin", "/unknown"},
		{"/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.expected, endpointPattern(req))
		})
	}
}

func TestEndpointPatternUsesChiRoute(t *testing.T) {
	var seen string
	r := chi.NewRouter()
	r.Get("/api/v1/players/{id}", func(w http.ResponseWriter, req *http.Request) {
		seen = endpointPattern(req)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/players/abc", nil))
	assert.Equal(t, "/api/v1/players/{id}", seen)
}

func TestRequestIDPropagation(t *testing.T) {
	var fromCtx string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "pitch-req-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "pitch-req-1", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "pitch-req-1", fromCtx)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, rec.Header().Get(RequestIDHeader), fromCtx)
}

func TestRecoveryWritesEnvelope(t *testing.T) {
	handler := RequestID(Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("leaderboard exploded")
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard", nil)
	req.Header.Set(RequestIDHeader, "panic-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL_ERROR"`)
	assert.Contains(t, rec.Body.String(), `"request_id":"panic-1"`)
}

func TestMaxBodyBytes(t *testing.T) {
	var readErr error
	handler := MaxBodyBytes(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		for readErr == nil {
			_, readErr = r.Body.Read(buf)
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 32))))
	require.Error(t, readErr)
	assert.Contains(t, readErr.Error(), "too large")
}
