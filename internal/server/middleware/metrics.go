package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pitchslap/pitchslap/internal/observability"
)

// statusRecorder captures the status code and body size written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

// endpointPattern returns a low-cardinality label for the request: the chi
// route pattern when one matched, otherwise a coarse bucket.
func endpointPattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}

	path := r.URL.Path
	switch {
	case path == "/":
		return "/"
	case path == "/version", path == "/metrics":
		return path
	case path == "/health" || strings.HasPrefix(path, "/health/"):
		return "/health/*"
	case strings.HasPrefix(path, "/api/"):
		return "/api/*"
	default:
		return "/unknown"
	}
}

// RequestMetrics emits request count, latency and size metrics, then logs
// the request with its correlation ID.
func RequestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if observability.TelemetrySystem == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start)

		endpoint := endpointPattern(r)
		status := strconv.Itoa(wrapped.statusCode)
		labels := map[string]string{
			"method":   r.Method,
			"endpoint": endpoint,
			"status":   status,
		}
		sizeLabels := map[string]string{
			"method":   r.Method,
			"endpoint": endpoint,
		}

		telemetry := observability.TelemetrySystem
		_ = telemetry.Counter("http_requests_total", 1, labels)
		_ = telemetry.Histogram("http_request_duration_ms", duration, labels)
		_ = telemetry.Gauge("http_request_size_bytes", float64(max(r.ContentLength, 0)), sizeLabels)
		_ = telemetry.Gauge("http_response_size_bytes", float64(wrapped.bytesWritten), sizeLabels)

		if wrapped.statusCode >= http.StatusBadRequest {
			errorType := "client_error"
			if wrapped.statusCode >= http.StatusInternalServerError {
				errorType = "server_error"
			}
			_ = telemetry.Counter("http_errors_total", 1, map[string]string{
				"method":     r.Method,
				"endpoint":   endpoint,
				"status":     status,
				"error_type": errorType,
			})
		}

		if observability.ServerLogger != nil {
			observability.ServerLogger.Info("HTTP request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("endpoint", endpoint),
				zap.Int("status", wrapped.statusCode),
				zap.Duration("duration", duration),
				zap.Int64("response_size", wrapped.bytesWritten),
				zap.String("requestID", GetRequestID(r.Context())),
			)
		}
	})
}

// MaxBodyBytes caps request bodies at limit bytes.
func MaxBodyBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
