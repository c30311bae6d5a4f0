package middleware

import (
	"net/http"
	"time"
)

type logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// statusWriter remembers what the handler responded with
type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.size += n
	return n, err
}

// Log every request once it is served
// Rejected requests (4xx) are logged as warnings, failed ones (5xx) as errors,
// so rejected tokens are visible without debug logs of the token manager
func LoggerMiddleware(l logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(sw, r)

			if sw.status == 0 {
				sw.status = http.StatusOK
			}
			requestID, _ := RequestIDFromContext(r.Context())

			args := []any{
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"size", sw.size,
				"duration", time.Since(start),
			}

			switch {
			case sw.status >= http.StatusInternalServerError:
				l.Error("HTTP request failed", args...)
			case sw.status >= http.StatusBadRequest:
				l.Warn("HTTP request rejected", args...)
			default:
				l.Info("HTTP request served", args...)
			}
		})
	}
}
