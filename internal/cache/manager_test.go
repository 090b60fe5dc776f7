package cache

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"lrucache/internal/cache/lru_cache"
)

// A mockCache is a not thread-safe mock implementation of Cache without eviction for testing
type mockCache[K comparable, V any] struct {
	cache    map[K]V
	capacity int
}

func newMockCache[K comparable, V any](capacity int) *mockCache[K, V] {
	return &mockCache[K, V]{make(map[K]V), capacity}
}

func (m *mockCache[K, V]) Set(key K, value V) (lru_cache.Entry[K, V], bool) {
	m.cache[key] = value
	return lru_cache.Entry[K, V]{}, false
}

func (m *mockCache[K, V]) Get(key K) (V, bool) {
	v, ok := m.cache[key]
	return v, ok
}

func (m *mockCache[K, V]) Peek(key K) (V, bool) {
	v, ok := m.cache[key]
	return v, ok
}

func (m *mockCache[K, V]) Oldest() (lru_cache.Entry[K, V], bool) {
	for k, v := range m.cache {
		return lru_cache.Entry[K, V]{Key: k, Value: v}, true
	}
	return lru_cache.Entry[K, V]{}, false
}

func (m *mockCache[K, V]) Delete(key K) bool {
	_, ok := m.cache[key]
	delete(m.cache, key)
	return ok
}

func (m *mockCache[K, V]) Contains(key K) bool {
	_, ok := m.cache[key]
	return ok
}

func (m *mockCache[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.cache))
	for k := range m.cache {
		keys = append(keys, k)
	}
	return keys
}

func (m *mockCache[K, V]) Flush() {
	clear(m.cache)
}

func (m *mockCache[K, V]) Size() int {
	return len(m.cache)
}

func (m *mockCache[K, V]) Capacity() int {
	return m.capacity
}

func (m *mockCache[K, V]) Empty() bool {
	return len(m.cache) == 0
}

func newTestLogger(w io.Writer) *zerolog.Logger {
	logger := zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return &logger
}

func TestNewManager(t *testing.T) {
	cache := newMockCache[string, string](10)
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	m := NewManager[string, string](cache, &logger)

	if m.cache != cache {
		t.Errorf("error: expected proper cache")
	}
	if m.logger != &logger {
		t.Errorf("error: expected proper logger")
	}
}

func TestNewManager_NilLogger(t *testing.T) {
	cache := newMockCache[string, string](10)
	m := NewManager[string, string](cache, nil)

	if m.cache != cache {
		t.Errorf("error: expected proper cache")
	}
	if m.logger == nil {
		t.Errorf("error: expected default logger to be used")
	}
}

func TestManager_Set(t *testing.T) {
	cache := newMockCache[string, string](10)
	m := NewManager[string, string](cache, newTestLogger(io.Discard))

	m.Set("order1", "entry1")
	m.Set("order2", "entry2")
	m.Set("order3", "entry3")

	if m.Size() != 3 {
		t.Errorf("error: expected cache size 3, got %d", m.Size())
	}

	v, ok := m.cache.Get("order2")
	if !ok || v != "entry2" {
		t.Errorf("error: failed to load value")
	}
	if s := m.Stats(); s.Sets != 3 || s.Evictions != 0 {
		t.Errorf("error: unexpected stats %+v", s)
	}
}

func TestManager_Get(t *testing.T) {
	cache := newMockCache[string, string](10)
	m := NewManager[string, string](cache, newTestLogger(io.Discard))

	m.Set("order1", "entry1")
	v, ok := m.Get("order1")
	if !ok || v != "entry1" {
		t.Errorf("error: expected entry1, got %v", v)
	}

	if _, ok = m.Get("order66"); ok {
		t.Errorf("error: expected miss for absent key")
	}

	s := m.Stats()
	if s.Hits != 1 || s.Misses != 1 {
		t.Errorf("error: expected 1 hit and 1 miss, got %+v", s)
	}
	if s.HitRatio() != 0.5 {
		t.Errorf("error: expected hit ratio 0.5, got %v", s.HitRatio())
	}
}

func TestManager_Peek(t *testing.T) {
	cache := lru_cache.NewLRUCache[string, string](2)
	m := NewManager[string, string](cache, newTestLogger(io.Discard))

	m.Set("a", "1")
	m.Set("b", "2")
	if v, ok := m.Peek("a"); !ok || v != "1" {
		t.Fatalf("error: expected (1, true), got (%s, %v)", v, ok)
	}
	m.Set("c", "3")
	if m.Contains("a") {
		t.Errorf("error: Peek should not protect a from eviction")
	}
	if s := m.Stats(); s.Hits != 0 || s.Misses != 0 {
		t.Errorf("error: Peek should not count as lookup, got %+v", s)
	}
}

func TestManager_Delete(t *testing.T) {
	cache := newMockCache[string, string](10)
	m := NewManager[string, string](cache, newTestLogger(io.Discard))

	m.Set("order1", "entry1")
	if !m.Delete("order1") {
		t.Errorf("error: expected order1 to be deleted")
	}
	if m.Delete("order1") {
		t.Errorf("error: second delete should report false")
	}

	if _, ok := m.cache.Get("order1"); ok {
		t.Errorf("error: expected value to be deleted from cache")
	}
	if s := m.Stats(); s.Deletes != 1 {
		t.Errorf("error: expected 1 delete, got %d", s.Deletes)
	}
}

func TestManager_Contains(t *testing.T) {
	cache := newMockCache[string, string](10)
	m := NewManager[string, string](cache, newTestLogger(io.Discard))

	m.Set("order1", "entry1")
	if !m.Contains("order1") {
		t.Errorf("error: expected value to be in cache")
	}
	m.Delete("order1")
	if m.Contains("order1") {
		t.Errorf("error: expected value to be deleted from cache")
	}
}

func TestManager_Flush(t *testing.T) {
	var buf bytes.Buffer
	cache := newMockCache[string, string](10)
	m := NewManager[string, string](cache, newTestLogger(&buf))

	m.Set("order1", "entry1")
	m.Set("order2", "entry2")
	m.Set("order3", "entry3")

	m.Flush()
	if !m.Empty() {
		t.Errorf("expected cache to be empty after Flush, got %d", m.Size())
	}
	if !strings.Contains(buf.String(), `"dropped":3`) {
		t.Errorf("error: expected flush to be logged, got %q", buf.String())
	}
}

func TestManager_Evictions(t *testing.T) {
	var buf bytes.Buffer
	cache := lru_cache.NewLRUCache[string, string](2)
	m := NewManager[string, string](cache, newTestLogger(&buf))

	m.Set("a", "1")
	m.Set("b", "2")
	if !m.Set("c", "3") {
		t.Fatalf("error: expected an eviction")
	}
	if m.Capacity() != 2 || m.Size() != 2 {
		t.Errorf("error: expected size and capacity 2, got %d and %d", m.Size(), m.Capacity())
	}
	if s := m.Stats(); s.Evictions != 1 {
		t.Errorf("error: expected 1 eviction, got %d", s.Evictions)
	}
	if !strings.Contains(buf.String(), `"key":"a"`) {
		t.Errorf("error: expected eviction of a to be logged, got %q", buf.String())
	}
	if got := m.Keys(); len(got) != 2 || got[0] != "c" || got[1] != "b" {
		t.Errorf("error: expected [c b], got %v", got)
	}
}

func TestStats_HitRatioNoLookups(t *testing.T) {
	if r := (Stats{}).HitRatio(); r != 0 {
		t.Errorf("error: expected 0, got %v", r)
	}
}

func TestManager_Concurrency(t *testing.T) {
	cache := lru_cache.NewLRUCache[string, string](200000)
	m := NewManager[string, string](cache, newTestLogger(io.Discard))

	wg := &sync.WaitGroup{}
	wg.Add(2)
	go func() {
		for i := 0; i < 100000; i++ {
			m.Set(fmt.Sprintf("order%d", i), fmt.Sprintf("entry%d", i))
		}
		wg.Done()
	}()

	go func() {
		for i := 0; i < 100000; i++ {
			m.Get(fmt.Sprintf("order%d", i))
		}
		wg.Done()
	}()

	wg.Wait()
	if m.Size() != 100000 {
		t.Errorf("%d", m.Size())
		t.Fail()
	}
	if s := m.Stats(); s.Hits+s.Misses != 100000 {
		t.Errorf("error: expected 100000 lookups, got %d", s.Hits+s.Misses)
	}
}
