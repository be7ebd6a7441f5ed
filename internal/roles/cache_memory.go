package roles

import (
	"context"
	"sync"
	"time"
)

// Clock abstracts time for testability.
type Clock func() time.Time

type memoryEntry struct {
	groups   []string
	storedAt time.Time
}

// MemoryCache is an in-memory implementation of Cache. Suitable for
// single-instance deployments and tests; expired entries are dropped
// lazily on read.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   Clock
	entries map[string]memoryEntry
}

// MemoryCacheOption configures a MemoryCache.
type MemoryCacheOption func(*MemoryCache)

// WithClock overrides the time source.
func WithClock(clock Clock) MemoryCacheOption {
	return func(c *MemoryCache) {
		c.clock = clock
	}
}

// NewMemoryCache constructs an in-memory role cache with the given TTL.
func NewMemoryCache(ttl time.Duration, opts ...MemoryCacheOption) *MemoryCache {
	c := &MemoryCache{
		ttl:     ttl,
		clock:   time.Now,
		entries: make(map[string]memoryEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached group list for the operator.
// An entry whose age has reached the TTL exactly is already expired.
func (c *MemoryCache) Get(_ context.Context, oid string) ([]string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[oid]
	if !ok {
		return nil, false, nil
	}
	if c.clock().Sub(entry.storedAt) >= c.ttl {
		delete(c.entries, oid)
		return nil, false, nil
	}
	return entry.groups, true, nil
}

// Set stores the group list, replacing any previous entry.
func (c *MemoryCache) Set(_ context.Context, oid string, groups []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[oid] = memoryEntry{groups: groups, storedAt: c.clock()}
	return nil
}
