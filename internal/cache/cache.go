// Package cache memoizes computed analyses at the service boundary. The
// core recomputes everything per request; this layer only saves the network
// fetch and the grid walk for repeated (symbol, period, params) requests.
package cache

import (
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"chipchart/internal/model"
)

// DefaultTTL bounds how stale a served analysis can get; daily bars only
// change after the close, so an hour is plenty fresh.
const DefaultTTL = time.Hour

// ResultCache stores analysis results with a bounded TTL. Singleflight
// guarantees at most one concurrent computation per key; concurrent callers
// for the same key share the winner's result.
type ResultCache struct {
	store *gocache.Cache
	group singleflight.Group
}

// New creates a cache whose entries expire after ttl.
func New(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{store: gocache.New(ttl, 2*ttl)}
}

// Key builds the memoization key for an analysis request.
func Key(symbol, period, mode string, buckets int) string {
	return fmt.Sprintf("%s|%s|%s|%d", strings.ToUpper(symbol), period, mode, buckets)
}

// GetOrCompute returns the cached result for key, or runs compute and caches
// its result. Errors are returned to every waiting caller and never cached.
func (c *ResultCache) GetOrCompute(key string, compute func() (*model.Result, error)) (*model.Result, error) {
	if v, ok := c.store.Get(key); ok {
		return v.(*model.Result), nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A racing caller may have filled the entry while we queued.
		if v, ok := c.store.Get(key); ok {
			return v, nil
		}
		res, err := compute()
		if err != nil {
			return nil, err
		}
		c.store.SetDefault(key, res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Result), nil
}

// Flush drops every cached entry.
func (c *ResultCache) Flush() {
	c.store.Flush()
}
