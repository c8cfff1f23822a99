package transport

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// HTTPMetrics records request outcomes.
type HTTPMetrics interface {
	ObserveRequest(route, status string, started time.Time)
}

// RateLimit applies a process-wide leaky-bucket limit to every request.
func RateLimit(rl ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rl.Take()
			next.ServeHTTP(w, r)
		})
	}
}

// Observe logs each request and records its metrics.
func Observe(metrics HTTPMetrics, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if pattern := r.Pattern; pattern != "" {
				route = pattern
			}
			status := strconv.Itoa(rec.status)
			metrics.ObserveRequest(route, status, started)
			logger.Debug("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("elapsed", time.Since(started)))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
