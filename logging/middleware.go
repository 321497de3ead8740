package logging

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// statusWriter wraps http.ResponseWriter to capture status code and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(data []byte) (int, error) {
	n, err := w.ResponseWriter.Write(data)
	w.bytes += n
	return n, err
}

// statusWriterPool reuses statusWriter instances so request logging does not
// allocate a wrapper per request.
var statusWriterPool = sync.Pool{
	New: func() any {
		return &statusWriter{status: http.StatusOK}
	},
}

// RequestLogger logs HTTP requests with structured attributes. Probe
// endpoints are skipped to keep the logs about storefront traffic.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			sw := statusWriterPool.Get().(*statusWriter)
			sw.ResponseWriter = w
			sw.status = http.StatusOK
			sw.bytes = 0

			next.ServeHTTP(sw, r)

			requestID, ok := r.Context().Value(middleware.RequestIDKey).(string)
			if !ok || requestID == "" {
				requestID = "unknown"
			}

			attrs := []any{
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
			}
			if r.URL.RawQuery != "" {
				attrs = append(attrs, "query", r.URL.RawQuery)
			}
			attrs = append(attrs,
				"remote_addr", r.RemoteAddr,
				"status_code", sw.status,
				"bytes_written", sw.bytes,
				"duration_ms", time.Since(start).Milliseconds(),
			)

			logger.InfoContext(r.Context(), "HTTP request", attrs...)

			statusWriterPool.Put(sw)
		})
	}
}
