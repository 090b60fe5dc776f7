// Package cache implements a thread-safe owner of a single-threaded cache and picks its eviction policy
package cache

import (
	"os"
	"sync"

	"github.com/rs/zerolog"

	"lrucache/internal/cache/lru_cache"
	"lrucache/internal/interfaces"
)

// Stats are counters collected by Manager
type Stats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Sets      uint64 `json:"sets"`
	Evictions uint64 `json:"evictions"`
	Deletes   uint64 `json:"deletes"`
}

// HitRatio returns hits divided by lookups, 0 when there were none
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// A Manager guards a cache with one mutex and records what happens to it.
// Every call, Get included, takes the same exclusive lock
type Manager[K comparable, V any] struct {
	cache  interfaces.Cache[K, V]
	logger *zerolog.Logger
	stats  Stats
	mu     sync.Mutex
}

// NewManager creates a new manager with specified cache and logger
func NewManager[K comparable, V any](cache interfaces.Cache[K, V], logger *zerolog.Logger) *Manager[K, V] {
	if logger == nil {
		logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
		return &Manager[K, V]{cache: cache, logger: &logger}
	}
	return &Manager[K, V]{cache: cache, logger: logger}
}

// Set stores a value and reports whether an older pair was evicted to make room
func (m *Manager[K, V]) Set(key K, value V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Sets++
	evicted, ok := m.cache.Set(key, value)
	if ok {
		m.stats.Evictions++
		m.logger.Debug().
			Interface("key", evicted.Key).
			Int("size", m.cache.Size()).
			Msg("evicted entry")
	}
	return ok
}

// Get returns a value from cache and refreshes its recency
func (m *Manager[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.cache.Get(key)
	if ok {
		m.stats.Hits++
	} else {
		m.stats.Misses++
	}
	return value, ok
}

// Peek returns a value without refreshing it. It is not counted as a lookup
func (m *Manager[K, V]) Peek(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cache.Peek(key)
}

// Oldest returns the pair the cache would evict next
func (m *Manager[K, V]) Oldest() (lru_cache.Entry[K, V], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cache.Oldest()
}

// Delete removes element from the cache
func (m *Manager[K, V]) Delete(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cache.Delete(key) {
		m.logger.Debug().Interface("key", key).Msg("delete of absent key")
		return false
	}
	m.stats.Deletes++
	return true
}

// Contains checks if element is present in cache
func (m *Manager[K, V]) Contains(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cache.Contains(key)
}

// Keys returns keys from the last to the next one to be evicted
func (m *Manager[K, V]) Keys() []K {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cache.Keys()
}

// Flush cleans all cache
func (m *Manager[K, V]) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()

	size := m.cache.Size()
	m.cache.Flush()
	m.logger.Info().Int("dropped", size).Msg("cache flushed")
}

// Size returns number of elements in cache
func (m *Manager[K, V]) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cache.Size()
}

// Capacity returns the maximum number of elements in cache
func (m *Manager[K, V]) Capacity() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cache.Capacity()
}

// Empty return whether the cache is empty
func (m *Manager[K, V]) Empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.cache.Empty()
}

// Stats returns a copy of the counters
func (m *Manager[K, V]) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.stats
}
