package cache

import (
	"fmt"
	"strings"

	"lrucache/internal/cache/fifo_cache"
	"lrucache/internal/cache/lfu_cache"
	"lrucache/internal/cache/lru_cache"
	"lrucache/internal/interfaces"
)

// A Policy names an eviction strategy
type Policy string

const (
	PolicyLRU  Policy = "lru"
	PolicyFIFO Policy = "fifo"
	PolicyLFU  Policy = "lfu"
)

// Policies lists every supported eviction strategy
var Policies = []Policy{PolicyLRU, PolicyFIFO, PolicyLFU}

// ParsePolicy accepts a policy name in any case. An empty name means PolicyLRU
func ParsePolicy(name string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case "":
		return PolicyLRU, nil
	case PolicyLRU, PolicyFIFO, PolicyLFU:
		return p, nil
	}
	return "", fmt.Errorf("unknown eviction policy %q, expected one of %v", name, Policies)
}

// New builds an empty cache with the given policy and capacity
func New[K comparable, V any](policy Policy, capacity int) (interfaces.Cache[K, V], error) {
	switch policy {
	case PolicyLRU, "":
		return lru_cache.NewLRUCache[K, V](capacity), nil
	case PolicyFIFO:
		return fifo_cache.NewFIFOCache[K, V](capacity), nil
	case PolicyLFU:
		return lfu_cache.NewLFUCache[K, V](capacity), nil
	}
	return nil, fmt.Errorf("unknown eviction policy %q", policy)
}
