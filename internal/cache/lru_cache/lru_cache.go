// Package lru_cache implements a lru cache data structure
package lru_cache

import (
	"fmt"

	"lrucache/internal/cache/lru_cache/list"
)

// DefaultCapacity is used when NewLRUCache gets a capacity less than 1
const DefaultCapacity = 10

// An Entry is a key-value pair reported by a cache, e.g. an evicted one
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// A LRUCache is a fixed capacity least recently used cache.
//
// It is not safe for concurrent use: owners that share it between goroutines
// must guard every call with a single lock, Get included, since a hit
// reorders the recency list.
type LRUCache[K comparable, V any] struct {
	lruList  *list.LRUList[K, V]
	cache    map[K]list.Handle
	capacity int
}

// NewLRUCache create empty cache. It should be created only using this command.
// A capacity less than 1 is replaced by DefaultCapacity
func NewLRUCache[K comparable, V any](capacity int) *LRUCache[K, V] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	hint := min(capacity, list.MaxPrealloc)
	return &LRUCache[K, V]{
		lruList:  list.NewLRUList[K, V](hint),
		cache:    make(map[K]list.Handle, hint),
		capacity: capacity,
	}
}

// Set adds or replaces a key-value pair and moves it to front.
// Adding a new key to a full cache evicts the least recently used pair, which is returned
func (c *LRUCache[K, V]) Set(key K, value V) (evicted Entry[K, V], ok bool) {
	if h, found := c.cache[key]; found {
		_ = c.lruList.SetValue(h, value)
		_ = c.lruList.MoveToFront(h)
		return
	}

	c.cache[key] = c.lruList.PushFront(key, value)
	if c.lruList.Size() <= c.capacity {
		return
	}

	k, v, err := c.lruList.PopBack()
	if err != nil {
		// the list holds capacity+1 elements here, so its back can't be root
		panic(fmt.Sprintf("lru_cache: evicting tail of %d elements: %v", c.lruList.Size(), err))
	}
	delete(c.cache, k)
	return Entry[K, V]{Key: k, Value: v}, true
}

// Get return a value by key and moves this pair to front
func (c *LRUCache[K, V]) Get(key K) (value V, ok bool) {
	h, ok := c.cache[key]
	if !ok {
		return
	}
	_ = c.lruList.MoveToFront(h)
	value, _ = c.lruList.Value(h)
	return value, true
}

// Peek return a value by key without touching its recency
func (c *LRUCache[K, V]) Peek(key K) (value V, ok bool) {
	h, ok := c.cache[key]
	if !ok {
		return
	}
	value, _ = c.lruList.Value(h)
	return value, true
}

// Oldest returns the least recently used pair, the next one to be evicted, without touching it
func (c *LRUCache[K, V]) Oldest() (entry Entry[K, V], ok bool) {
	h, ok := c.lruList.Back()
	if !ok {
		return
	}
	entry.Key, _ = c.lruList.Key(h)
	entry.Value, _ = c.lruList.Value(h)
	return entry, true
}

// Delete removes a pair by key and reports whether it was present
func (c *LRUCache[K, V]) Delete(key K) bool {
	h, ok := c.cache[key]
	if !ok {
		return false
	}
	delete(c.cache, key)
	_, _, _ = c.lruList.Remove(h)
	return true
}

// Contains return if key is present in cache. Recency is not changed
func (c *LRUCache[K, V]) Contains(key K) bool {
	_, ok := c.cache[key]
	return ok
}

// Keys returns keys from the most to the least recently used
func (c *LRUCache[K, V]) Keys() []K {
	return c.lruList.Keys()
}

// Flush clears a cache
func (c *LRUCache[K, V]) Flush() {
	c.lruList.Reset()
	clear(c.cache)
}

// Size returns how many elements are currently cached
func (c *LRUCache[K, V]) Size() int {
	return len(c.cache)
}

// Capacity returns the maximum capacity of the cache
func (c *LRUCache[K, V]) Capacity() int {
	return c.capacity
}

// Empty returns if there are no elements in cache
func (c *LRUCache[K, V]) Empty() bool {
	return len(c.cache) == 0
}
