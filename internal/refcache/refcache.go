// Package refcache implements a time-boxed read-through cache for reference
// data: small, read-mostly collections that are always fetched whole. It is
// not suitable for collections that grow without bound, since every read
// materializes the full collection.
package refcache

import (
	"context"
	"sync"
	"time"
)

// FetchFunc loads the full collection from the backing store.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Cache caches one collection. A ttl <= 0 means entries never expire and only
// Invalidate refreshes them.
//
// Concurrent misses are not deduplicated: each caller fetches independently
// and the last writer's result becomes the cached value. For read-mostly
// reference data the duplicate fetch is cheaper than single-flight machinery.
type Cache[T any] struct {
	ttl   time.Duration
	fetch FetchFunc[T]
	now   func() time.Time

	mu        sync.Mutex
	entries   []T
	valid     bool
	fetchedAt time.Time
}

// New creates a cache over fetch with the given TTL.
func New[T any](ttl time.Duration, fetch FetchFunc[T]) *Cache[T] {
	return &Cache[T]{ttl: ttl, fetch: fetch, now: time.Now}
}

// GetAll returns the cached collection, fetching it first if the cache is
// empty or stale.
func (c *Cache[T]) GetAll(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	if c.valid && (c.ttl <= 0 || c.now().Sub(c.fetchedAt) < c.ttl) {
		entries := c.entries
		c.mu.Unlock()
		return entries, nil
	}
	c.mu.Unlock()

	// Fetch outside the lock so a slow store does not serialize readers.
	entries, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries = entries
	c.valid = true
	c.fetchedAt = c.now()
	c.mu.Unlock()

	return entries, nil
}

// GetFiltered returns the cached entries matching keep. It always filters the
// full cached collection in memory; it never issues a narrower store query.
func (c *Cache[T]) GetFiltered(ctx context.Context, keep func(T) bool) ([]T, error) {
	entries, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []T
	for _, e := range entries {
		if keep(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// Invalidate discards the cached collection so the next GetAll fetches fresh.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	c.entries = nil
	c.valid = false
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}
