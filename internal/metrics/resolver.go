package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcomes.
const (
	ResolveCacheHit     = "cache_hit"
	ResolveNegativeHit  = "negative_hit"
	ResolveLookup       = "lookup"
	ResolveLookupFailed = "lookup_failed"
)

var identityResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "insight",
	Subsystem: "identity",
	Name:      "resolutions_total",
	Help:      "Count of identity name resolutions by outcome.",
}, []string{"outcome"})

// Resolver tracks identity resolution outcomes.
type Resolver struct{}

// NewResolver constructs a metrics collector for the identity resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ObserveResolve records one resolution outcome.
func (Resolver) ObserveResolve(outcome string) {
	identityResolutionsTotal.WithLabelValues(outcome).Inc()
}
