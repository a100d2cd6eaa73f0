// Package metrics registers the Prometheus instrumentation for the portal
// API: HTTP request counters and durations, plus upload business metrics
// updated from the service layer.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total HTTP requests handled by the portal API",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Business metrics, updated from the service layer.
var (
	// UploadsTotal counts successfully stored uploads.
	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_uploads_total",
		Help: "Total uploads stored",
	})

	// UploadBytes counts bytes written to upload storage.
	UploadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_upload_bytes_total",
		Help: "Total bytes written to upload storage",
	})
)

// Middleware returns an HTTP middleware recording request count and
// duration per endpoint.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := normalizePath(r.URL.Path)

			wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// normalizePath collapses id-bearing paths to a fixed label so upload ids
// do not explode metric cardinality.
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/upload/"):
		return "/upload/{uploadId}"
	case strings.HasPrefix(path, "/files/"):
		return "/files/{uploadId}"
	case strings.HasPrefix(path, "/app/"):
		return "/app"
	default:
		return path
	}
}
