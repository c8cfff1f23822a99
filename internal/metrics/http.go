package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "insight",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Count of HTTP requests.",
	}, []string{"route", "status"})
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "insight",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "status"})
)

// HTTP tracks request metrics for the API surface.
type HTTP struct{}

// NewHTTP constructs a metrics collector for HTTP handlers.
func NewHTTP() *HTTP {
	return &HTTP{}
}

// ObserveRequest records one handled request.
func (HTTP) ObserveRequest(route, status string, started time.Time) {
	httpRequestsTotal.WithLabelValues(route, status).Inc()
	httpRequestDuration.WithLabelValues(route, status).Observe(time.Since(started).Seconds())
}
