// Package identity resolves on-chain identity addresses to friendly names.
package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/alexenglish/insight-api-komodo/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Lookup fetches identity information from the node.
	Lookup interface {
		Identity(ctx context.Context, address string) (*model.IdentityResult, error)
	}

	// Metrics records resolution outcomes.
	Metrics interface {
		ObserveResolve(outcome string)
	}
)

// Negative lookup results are remembered briefly so a persistently missing
// identity does not hit the node on every transform. Positive entries never
// expire: identity names are immutable on-chain facts.
const negativeTTL = 2 * time.Minute

// IsAddress reports whether s looks like an identity address.
func IsAddress(s string) bool {
	return strings.HasPrefix(s, "i") && len(s) > 1
}

// Resolver maps identity addresses to friendly names with process-lifetime
// memoization. One instance is constructed at startup and shared by all
// transforms.
type Resolver struct {
	lookup  Lookup
	metrics Metrics
	logger  *zap.Logger

	mu       sync.RWMutex
	names    map[string]string
	negative *gocache.Cache
}

// NewResolver constructs a resolver around the identity lookup service.
func NewResolver(lookup Lookup, metrics Metrics, logger *zap.Logger) *Resolver {
	return &Resolver{
		lookup:   lookup,
		metrics:  metrics,
		logger:   logger,
		names:    make(map[string]string),
		negative: gocache.New(negativeTTL, 2*negativeTTL),
	}
}

// Resolve returns the friendly name for an identity address. A cached name is
// returned without I/O. A failed lookup returns the address itself and is not
// added to the permanent cache, so resolution is retried after the negative
// TTL passes.
func (r *Resolver) Resolve(ctx context.Context, address string) string {
	r.mu.RLock()
	name, ok := r.names[address]
	r.mu.RUnlock()
	if ok {
		r.metrics.ObserveResolve("cache_hit")
		return name
	}
	if _, found := r.negative.Get(address); found {
		r.metrics.ObserveResolve("negative_hit")
		return address
	}

	res, err := r.lookup.Identity(ctx, address)
	if err != nil {
		r.metrics.ObserveResolve("lookup_failed")
		r.logger.Debug("identity lookup failed",
			zap.String("address", address), zap.Error(err))
		r.negative.SetDefault(address, struct{}{})
		return address
	}
	r.metrics.ObserveResolve("lookup")

	name = friendlyName(address, res)
	r.mu.Lock()
	r.names[address] = name
	r.mu.Unlock()
	return name
}

// friendlyName derives the display name from an identity result. Suffix
// stripping applies only to the registered friendly name, never to the
// identity object's own name field.
func friendlyName(address string, res *model.IdentityResult) string {
	if res.IdentityInfo != nil && res.IdentityInfo.FriendlyName != "" {
		name := strings.TrimSuffix(res.IdentityInfo.FriendlyName, "@")
		return strings.TrimSuffix(name, ".VRSC")
	}
	if res.Identity != nil && res.Identity.Name != "" {
		return res.Identity.Name
	}
	return address
}
