// Package lfu_cache implements a least frequently used cache on top of a binary heap
package lfu_cache

import (
	"container/heap"
	"slices"

	"lrucache/internal/cache/lru_cache"
	"lrucache/internal/cache/lru_cache/list"
)

// entry is a heap element. index is its position inside priorityQueue
type entry[K comparable, V any] struct {
	key   K
	value V
	hits  uint64
	tick  uint64
	index int
}

// less orders entries by hit count, the least recently touched one goes first among equals
func (e *entry[K, V]) less(other *entry[K, V]) bool {
	if e.hits != other.hits {
		return e.hits < other.hits
	}
	return e.tick < other.tick
}

// priorityQueue is a min heap with the next victim at index 0
type priorityQueue[K comparable, V any] []*entry[K, V]

func (pq priorityQueue[K, V]) Len() int { return len(pq) }

func (pq priorityQueue[K, V]) Less(i, j int) bool { return pq[i].less(pq[j]) }

func (pq priorityQueue[K, V]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue[K, V]) Push(x any) {
	e := x.(*entry[K, V])
	e.index = len(*pq)
	*pq = append(*pq, e)
}

func (pq *priorityQueue[K, V]) Pop() any {
	old := *pq
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*pq = old[:n-1]
	return e
}

// A LFUCache evicts the pair with the fewest hits, ties go to the least recently touched pair.
// Get and Set on a present key both count as a hit. It is not safe for concurrent use
type LFUCache[K comparable, V any] struct {
	pq       priorityQueue[K, V]
	cache    map[K]*entry[K, V]
	capacity int
	tick     uint64
}

// NewLFUCache create empty cache. A capacity less than 1 is replaced by lru_cache.DefaultCapacity
func NewLFUCache[K comparable, V any](capacity int) *LFUCache[K, V] {
	if capacity < 1 {
		capacity = lru_cache.DefaultCapacity
	}
	hint := min(capacity, list.MaxPrealloc)
	return &LFUCache[K, V]{
		pq:       make(priorityQueue[K, V], 0, hint),
		cache:    make(map[K]*entry[K, V], hint),
		capacity: capacity,
	}
}

func (c *LFUCache[K, V]) touch(e *entry[K, V]) {
	c.tick++
	e.hits++
	e.tick = c.tick
	heap.Fix(&c.pq, e.index)
}

// Set adds or replaces a pair. Adding a new key to a full cache first evicts the
// least frequently used pair, which is returned
func (c *LFUCache[K, V]) Set(key K, value V) (evicted lru_cache.Entry[K, V], ok bool) {
	if e, found := c.cache[key]; found {
		e.value = value
		c.touch(e)
		return
	}

	if len(c.pq) >= c.capacity {
		victim := heap.Pop(&c.pq).(*entry[K, V])
		delete(c.cache, victim.key)
		evicted, ok = lru_cache.Entry[K, V]{Key: victim.key, Value: victim.value}, true
	}

	c.tick++
	e := &entry[K, V]{key: key, value: value, hits: 1, tick: c.tick}
	heap.Push(&c.pq, e)
	c.cache[key] = e
	return evicted, ok
}

// Get return a value by key and counts a hit
func (c *LFUCache[K, V]) Get(key K) (value V, ok bool) {
	e, ok := c.cache[key]
	if !ok {
		return
	}
	c.touch(e)
	return e.value, true
}

// Peek return a value by key without counting a hit
func (c *LFUCache[K, V]) Peek(key K) (value V, ok bool) {
	e, ok := c.cache[key]
	if !ok {
		return
	}
	return e.value, true
}

// Oldest returns the pair that would be evicted next
func (c *LFUCache[K, V]) Oldest() (oldest lru_cache.Entry[K, V], ok bool) {
	if len(c.pq) == 0 {
		return
	}
	return lru_cache.Entry[K, V]{Key: c.pq[0].key, Value: c.pq[0].value}, true
}

// Hits returns how many times key was set or read since it entered the cache
func (c *LFUCache[K, V]) Hits(key K) (uint64, bool) {
	e, ok := c.cache[key]
	if !ok {
		return 0, false
	}
	return e.hits, true
}

// Delete removes a pair by key and reports whether it was present
func (c *LFUCache[K, V]) Delete(key K) bool {
	e, ok := c.cache[key]
	if !ok {
		return false
	}
	heap.Remove(&c.pq, e.index)
	delete(c.cache, key)
	return true
}

// Contains return if key is present in cache
func (c *LFUCache[K, V]) Contains(key K) bool {
	_, ok := c.cache[key]
	return ok
}

// Keys returns keys ordered from the last to the first to be evicted
func (c *LFUCache[K, V]) Keys() []K {
	entries := slices.Clone(c.pq)
	slices.SortFunc(entries, func(a, b *entry[K, V]) int {
		switch {
		case b.less(a):
			return -1
		case a.less(b):
			return 1
		}
		return 0
	})
	keys := make([]K, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys
}

// Flush clears a cache
func (c *LFUCache[K, V]) Flush() {
	clear(c.pq)
	c.pq = c.pq[:0]
	clear(c.cache)
}

// Size returns how many elements are currently cached
func (c *LFUCache[K, V]) Size() int {
	return len(c.cache)
}

// Capacity returns the maximum capacity of the cache
func (c *LFUCache[K, V]) Capacity() int {
	return c.capacity
}

// Empty returns if there are no elements in cache
func (c *LFUCache[K, V]) Empty() bool {
	return len(c.cache) == 0
}
