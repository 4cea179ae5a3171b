// Package lru provides a bounded key-value table with least-recently-used
// eviction. The rate limiter uses it to cap per-client state: when the table
// is full, the client idle the longest is forgotten.
package lru

import (
	"container/list"
	"sync"
)

type entry[K comparable, V any] struct {
	key K
	val V
}

// Cache is a generic, thread-safe LRU cache.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	items    map[K]*list.Element
}

// New creates an LRU cache with the given capacity. Panics if capacity < 1.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity < 1 {
		panic("lru: capacity must be >= 1")
	}
	return &Cache[K, V]{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[K]*list.Element, capacity),
	}
}

// Get retrieves a value by key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry[K, V]).val, true
}

// GetOrPut returns the value for key, installing the one produced by create
// if the key is absent. Lookup and insert happen under a single lock, so
// concurrent callers racing on the same key always end up sharing one value.
func (c *Cache[K, V]) GetOrPut(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry[K, V]).val
	}
	val := create()
	c.insert(key, val)
	return val
}

// Put inserts or updates a key-value pair, evicting the least recently used
// entry when at capacity. Returns the evicted key and true if an eviction
// occurred.
func (c *Cache[K, V]) Put(key K, val V) (K, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry[K, V]).val = val
		c.order.MoveToFront(el)
		var zero K
		return zero, false
	}
	return c.insert(key, val)
}

// Delete removes a key. Returns true if the key existed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.items, key)
	return true
}

// Len returns the current number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// insert assumes the key is absent and the lock is held.
func (c *Cache[K, V]) insert(key K, val V) (K, bool) {
	var evictedKey K
	evicted := false
	if c.order.Len() >= c.capacity {
		back := c.order.Back()
		victim := back.Value.(*entry[K, V])
		c.order.Remove(back)
		delete(c.items, victim.key)
		evictedKey = victim.key
		evicted = true
	}
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, val: val})
	return evictedKey, evicted
}
