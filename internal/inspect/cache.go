package inspect

import (
	"time"

	"mediumcheck/internal/resolver"
)

type cacheEntry struct {
	storedAt time.Time
	status   resolver.MediumStatus
}

// statusCache keeps successful lookups keyed by the exact query text. Expired
// entries are dropped when read. Only the controller loop touches it.
type statusCache struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

func newStatusCache(ttl time.Duration, now func() time.Time) *statusCache {
	return &statusCache{ttl: ttl, now: now, entries: make(map[string]cacheEntry)}
}

func (c *statusCache) get(query string) (resolver.MediumStatus, bool) {
	entry, ok := c.entries[query]
	if !ok {
		return resolver.MediumStatus{}, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, query)
		return resolver.MediumStatus{}, false
	}
	return entry.status, true
}

func (c *statusCache) put(query string, status resolver.MediumStatus) {
	if !status.OK {
		return
	}
	c.entries[query] = cacheEntry{storedAt: c.now(), status: status}
}

func (c *statusCache) len() int {
	return len(c.entries)
}
