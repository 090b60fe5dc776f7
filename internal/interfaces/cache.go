package interfaces

import "lrucache/internal/cache/lru_cache"

type Cache[K comparable, V any] interface {
	Set(key K, value V) (lru_cache.Entry[K, V], bool)
	Get(key K) (V, bool)
	Peek(key K) (V, bool)
	Oldest() (lru_cache.Entry[K, V], bool)
	Delete(key K) bool
	Contains(key K) bool
	Keys() []K
	Flush()
	Size() int
	Capacity() int
	Empty() bool
}
