package backend

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ProbeCache caches liveness probe results per backend. The cache is best
// effort and eventually consistent: a cached "reachable" may be stale by
// the time a completion is issued, and the completion must then fail with
// a BackendError rather than be retried here.
type ProbeCache struct {
	ttl   time.Duration
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]probeEntry
}

type probeEntry struct {
	reachable bool
	checkedAt time.Time
}

// NewProbeCache creates a probe cache with the given entry TTL.
// A non-positive TTL disables caching and probes every time.
func NewProbeCache(ttl time.Duration) *ProbeCache {
	return &ProbeCache{
		ttl:     ttl,
		entries: make(map[string]probeEntry),
	}
}

// Reachable returns the cached probe result for the backend, probing when
// the entry is missing or expired. Concurrent probes for the same backend
// are collapsed into one.
func (c *ProbeCache) Reachable(ctx context.Context, b Backend) bool {
	if c == nil {
		return b.IsReachable(ctx)
	}

	name := b.Name()
	if c.ttl > 0 {
		c.mu.Lock()
		entry, ok := c.entries[name]
		c.mu.Unlock()
		if ok && time.Since(entry.checkedAt) < c.ttl {
			return entry.reachable
		}
	}

	v, _, _ := c.group.Do(name, func() (interface{}, error) {
		reachable := b.IsReachable(ctx)
		c.mu.Lock()
		c.entries[name] = probeEntry{reachable: reachable, checkedAt: time.Now()}
		c.mu.Unlock()
		return reachable, nil
	})
	reachable, _ := v.(bool)
	return reachable
}

// Invalidate drops the cached entry for a backend, forcing the next
// Reachable call to probe.
func (c *ProbeCache) Invalidate(name string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, name)
	c.mu.Unlock()
}
