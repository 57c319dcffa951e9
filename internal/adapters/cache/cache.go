// Package cache provides a bounded in-memory store for memoized results.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
)

// node is one entry in the insertion-ordered list.
type node[K comparable, V any] struct {
	key        K
	val        V
	prev, next *node[K, V]
}

// Cache maps keys to values. When bounded it evicts the oldest inserted entry
// first; with maxSize <= 0 it never evicts.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*node[K, V]
	head    *node[K, V] // newest
	tail    *node[K, V] // oldest
	maxSize int

	size   atomic.Int64
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cache with configuration options.
func New[K comparable, V any](opts ...Option) *Cache[K, V] {
	s := settings{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(&s)
	}
	return &Cache[K, V]{
		entries: make(map[K]*node[K, V]),
		maxSize: s.maxSize,
	}
}

// Get returns the value stored under key.
func (c *Cache[K, V]) Get(_ context.Context, key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	return n.val, true
}

// Put stores val under key. Replacing a value keeps the entry's age.
func (c *Cache[K, V]) Put(_ context.Context, key K, val V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		n.val = val
		return
	}
	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	n := &node[K, V]{key: key, val: val, next: c.head}
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
	c.entries[key] = n
	c.size.Add(1)
}

// Delete removes key if present.
func (c *Cache[K, V]) Delete(_ context.Context, key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		c.unlink(n)
	}
}

// evictOldest removes the tail. Must be called with c.mu held.
func (c *Cache[K, V]) evictOldest() {
	if c.tail != nil {
		c.unlink(c.tail)
	}
}

// unlink removes n from the list and the map. Must be called with c.mu held.
func (c *Cache[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
	delete(c.entries, n.key)
	c.size.Add(-1)
}

// Size returns the current number of entries.
func (c *Cache[K, V]) Size() int64 {
	return c.size.Load()
}

// Stats returns the hit and miss counts since creation.
func (c *Cache[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
