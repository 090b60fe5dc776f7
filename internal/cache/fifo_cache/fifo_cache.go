// Package fifo_cache implements a first in first out cache
package fifo_cache

import (
	"fmt"

	"lrucache/internal/cache/lru_cache"
	"lrucache/internal/cache/lru_cache/list"
)

// A FIFOCache evicts pairs in insertion order. Reads and updates never change that order.
// It is not safe for concurrent use
type FIFOCache[K comparable, V any] struct {
	queue    *list.LRUList[K, V]
	cache    map[K]list.Handle
	capacity int
}

// NewFIFOCache create empty cache. A capacity less than 1 is replaced by lru_cache.DefaultCapacity
func NewFIFOCache[K comparable, V any](capacity int) *FIFOCache[K, V] {
	if capacity < 1 {
		capacity = lru_cache.DefaultCapacity
	}
	hint := min(capacity, list.MaxPrealloc)
	return &FIFOCache[K, V]{
		queue:    list.NewLRUList[K, V](hint),
		cache:    make(map[K]list.Handle, hint),
		capacity: capacity,
	}
}

// Set adds a new pair or replaces the value of an existing one in place.
// Adding a new key to a full cache evicts the earliest inserted pair, which is returned
func (c *FIFOCache[K, V]) Set(key K, value V) (evicted lru_cache.Entry[K, V], ok bool) {
	if h, found := c.cache[key]; found {
		_ = c.queue.SetValue(h, value)
		return
	}

	c.cache[key] = c.queue.PushFront(key, value)
	if c.queue.Size() <= c.capacity {
		return
	}

	k, v, err := c.queue.PopBack()
	if err != nil {
		panic(fmt.Sprintf("fifo_cache: evicting tail of %d elements: %v", c.queue.Size(), err))
	}
	delete(c.cache, k)
	return lru_cache.Entry[K, V]{Key: k, Value: v}, true
}

// Get return a value by key
func (c *FIFOCache[K, V]) Get(key K) (value V, ok bool) {
	return c.Peek(key)
}

// Peek return a value by key, same as Get
func (c *FIFOCache[K, V]) Peek(key K) (value V, ok bool) {
	h, ok := c.cache[key]
	if !ok {
		return
	}
	value, _ = c.queue.Value(h)
	return value, true
}

// Oldest returns the earliest inserted pair, the next one to be evicted
func (c *FIFOCache[K, V]) Oldest() (entry lru_cache.Entry[K, V], ok bool) {
	h, ok := c.queue.Back()
	if !ok {
		return
	}
	entry.Key, _ = c.queue.Key(h)
	entry.Value, _ = c.queue.Value(h)
	return entry, true
}

// Delete removes a pair by key and reports whether it was present
func (c *FIFOCache[K, V]) Delete(key K) bool {
	h, ok := c.cache[key]
	if !ok {
		return false
	}
	delete(c.cache, key)
	_, _, _ = c.queue.Remove(h)
	return true
}

// Contains return if key is present in cache
func (c *FIFOCache[K, V]) Contains(key K) bool {
	_, ok := c.cache[key]
	return ok
}

// Keys returns keys from the newest to the earliest inserted
func (c *FIFOCache[K, V]) Keys() []K {
	return c.queue.Keys()
}

// Flush clears a cache
func (c *FIFOCache[K, V]) Flush() {
	c.queue.Reset()
	clear(c.cache)
}

// Size returns how many elements are currently cached
func (c *FIFOCache[K, V]) Size() int {
	return len(c.cache)
}

// Capacity returns the maximum capacity of the cache
func (c *FIFOCache[K, V]) Capacity() int {
	return c.capacity
}

// Empty returns if there are no elements in cache
func (c *FIFOCache[K, V]) Empty() bool {
	return len(c.cache) == 0
}
