package compile

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/katalvlaran/numexpr/expr"
)

// DefaultCacheCapacity is the artifact capacity selected when NewCache is
// given a non-positive size.
const DefaultCacheCapacity = 128

// Cache memoizes compiled artifacts behind a canonical fingerprint with
// bounded LRU eviction. It is an explicitly owned object — there is no
// package-level cache — so its lifetime and capacity are the caller's
// decision.
//
// Safe for concurrent use: one mutex serializes the lookup-or-compile
// sequence, so a reader never observes a partially constructed artifact
// and concurrent identical requests compile exactly once.
type Cache struct {
	mu        sync.Mutex
	artifacts *lru.Cache[string, *Artifact]
	capacity  int
	hits      uint64
	misses    uint64
	evictions uint64
}

// CacheStats is a point-in-time snapshot of cache behavior.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Len       int
	Capacity  int
}

// NewCache creates a cache holding at most capacity artifacts; a
// non-positive capacity selects DefaultCacheCapacity.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	c := &Cache{capacity: capacity}
	// Eviction callback runs inside Add under c.mu, so the plain counter
	// increment is already serialized.
	c.artifacts, _ = lru.NewWithEvict[string, *Artifact](capacity,
		func(string, *Artifact) { c.evictions++ })
	return c
}

// Compile returns the artifact for a structurally identical earlier
// request, wrapped in a fresh Func, or compiles, inserts, and wraps on a
// miss. Two hits on the same key share one Artifact instance; each call
// still gets its own wrapper with all variables Free.
//
// Compile-time errors are those of the package-level Compile; erroneous
// requests are never inserted.
func (c *Cache) Compile(e expr.Expr, vars any, opts *Options) (*Func, error) {
	st, err := prepare(e, vars, opts)
	if err != nil {
		return nil, err
	}
	key := st.fingerprint()

	c.mu.Lock()
	defer c.mu.Unlock()
	if art, ok := c.artifacts.Get(key); ok {
		c.hits++
		return newFunc(art), nil
	}
	art, err := st.finish()
	if err != nil {
		return nil, fmt.Errorf("cache miss compile: %w", err)
	}
	c.misses++
	c.artifacts.Add(key, art)
	return newFunc(art), nil
}

// Clear drops every cached artifact. Counters keep accumulating; evicted
// entries from Clear are not counted as LRU evictions.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Purge fires the eviction callback per entry; compensate so the
	// eviction counter reflects capacity pressure only.
	n := uint64(c.artifacts.Len())
	c.artifacts.Purge()
	c.evictions -= n
}

// Stats returns a snapshot of hit/miss/eviction counters and occupancy.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Len:       c.artifacts.Len(),
		Capacity:  c.capacity,
	}
}
