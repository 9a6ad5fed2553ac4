// Package query binds API calls to a cache-and-refetch layer. A query is
// one fetch bound to a cache key tuple; a mutation is one write that
// invalidates every cached query under the resource prefixes it touches.
package query

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Key identifies a cached query: a tuple of resource name, operation
// name, and relevant parameters, e.g. {"appointments", "by-salon", id}.
type Key []string

// String joins the tuple into the cache map key. The separator cannot
// appear in path-safe identifiers, so joined keys stay unambiguous.
func (k Key) String() string {
	return strings.Join(k, "\x1f")
}

// HasPrefix reports whether the key starts with the given tuple.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, p := range prefix {
		if k[i] != p {
			return false
		}
	}
	return true
}

const defaultQueryRetries = 2

// CacheConfig holds cache configuration.
type CacheConfig struct {
	// QueryRetries is the fixed retry count applied to every query fetch.
	// Mutations never retry. Defaults to 2; negative disables retries.
	QueryRetries int
	// Logger is optional; a discard logger is used when nil.
	Logger logrus.FieldLogger
}

// Cache is the shared query cache. Concurrent identical queries (same
// key) are deduplicated; distinct queries are never serialized.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
	retries int
	log     logrus.FieldLogger
}

type cacheEntry struct {
	key   Key
	value any
}

// NewCache creates an empty cache.
func NewCache(cfg CacheConfig) *Cache {
	retries := cfg.QueryRetries
	if retries == 0 {
		retries = defaultQueryRetries
	} else if retries < 0 {
		retries = 0
	}

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}

	return &Cache{
		entries: make(map[string]cacheEntry),
		retries: retries,
		log:     log,
	}
}

func (c *Cache) lookup(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key.String()]
	return e.value, ok
}

func (c *Cache) store(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key.String()] = cacheEntry{key: key, value: value}
}

// Invalidate removes every cached entry whose key starts with the given
// prefix. Invalidating {"appointments"} drops all appointment queries
// regardless of their parameters.
func (c *Cache) Invalidate(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for joined, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, joined)
			removed++
		}
	}

	if removed > 0 {
		c.log.WithFields(logrus.Fields{
			"component": "query",
			"prefix":    strings.Join(prefix, "/"),
			"removed":   removed,
		}).Debug("cache invalidated")
	}
	return removed
}

// Clear drops the entire cache. Used on logout so no stale authenticated
// data survives into the next session.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
