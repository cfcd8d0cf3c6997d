package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryConfig bounds a MemoryCache.
type MemoryConfig struct {
	MaxSize int
	TTL     time.Duration
}

// MemoryOption configures a MemoryCache.
type MemoryOption func(*MemoryConfig)

// WithMemoryMaxSize caps the number of entries before LRU eviction.
func WithMemoryMaxSize(size int) MemoryOption {
	return func(c *MemoryConfig) { c.MaxSize = size }
}

// WithMemoryTTL expires entries after ttl. Zero keeps entries until evicted.
func WithMemoryTTL(ttl time.Duration) MemoryOption {
	return func(c *MemoryConfig) { c.TTL = ttl }
}

// GenerateKeyWithParams joins prefix and params with ':'.
func GenerateKeyWithParams(prefix string, params ...interface{}) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range params {
		b.WriteByte(':')
		fmt.Fprint(&b, p)
	}
	return b.String()
}

// MemoryItem stores a cached value with an optional expiry.
type MemoryItem[V any] struct {
	Value    V
	ExpireAt time.Time
}

// IsExpired reports whether the item has expired at now. Items without an
// expiry never expire.
func (m *MemoryItem[V]) IsExpired(now time.Time) bool {
	return !m.ExpireAt.IsZero() && now.After(m.ExpireAt)
}

// Stats is a point-in-time view of cache counters.
type Stats struct {
	Size      int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// MemoryCache is a bounded in-memory cache with LRU eviction. Recency is
// tracked with a logical clock so ordering is exact under bursts.
type MemoryCache[K comparable, V any] struct {
	data    map[K]*MemoryItem[V]
	access  map[K]uint64
	clock   uint64
	mutex   sync.Mutex
	maxSize int
	ttl     time.Duration
	stats   Stats
}

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache[K comparable, V any](opts ...MemoryOption) *MemoryCache[K, V] {
	cfg := &MemoryConfig{
		MaxSize: 1000,
	}

	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.MaxSize < 1 {
		cfg.MaxSize = 1
	}

	return &MemoryCache[K, V]{
		data:    make(map[K]*MemoryItem[V]),
		access:  make(map[K]uint64),
		maxSize: cfg.MaxSize,
		ttl:     cfg.TTL,
	}
}

// Get returns the cached value and marks it most recently used.
func (mc *MemoryCache[K, V]) Get(key K) (V, bool) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	item, exists := mc.data[key]
	if !exists || item.IsExpired(time.Now()) {
		if exists {
			mc.remove(key)
		}
		mc.stats.Misses++
		var zero V
		return zero, false
	}

	mc.touch(key)
	mc.stats.Hits++
	return item.Value, true
}

// Set stores value, evicting the least recently used entry when full.
func (mc *MemoryCache[K, V]) Set(key K, value V) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	if _, exists := mc.data[key]; !exists && len(mc.data) >= mc.maxSize {
		mc.evictLRU()
	}

	item := &MemoryItem[V]{Value: value}
	if mc.ttl > 0 {
		item.ExpireAt = time.Now().Add(mc.ttl)
	}
	mc.data[key] = item
	mc.touch(key)
}

// Delete removes keys.
func (mc *MemoryCache[K, V]) Delete(keys ...K) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	for _, key := range keys {
		mc.remove(key)
	}
}

// Purge drops every entry. Counters are kept.
func (mc *MemoryCache[K, V]) Purge() {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	mc.data = make(map[K]*MemoryItem[V])
	mc.access = make(map[K]uint64)
}

// Len returns the number of stored entries, including expired ones not yet
// collected.
func (mc *MemoryCache[K, V]) Len() int {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	return len(mc.data)
}

// Stats returns a snapshot of the cache counters.
func (mc *MemoryCache[K, V]) Stats() Stats {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	s := mc.stats
	s.Size = len(mc.data)
	return s
}

func (mc *MemoryCache[K, V]) touch(key K) {
	mc.clock++
	mc.access[key] = mc.clock
}

func (mc *MemoryCache[K, V]) remove(key K) {
	delete(mc.data, key)
	delete(mc.access, key)
}

func (mc *MemoryCache[K, V]) evictLRU() {
	if len(mc.data) == 0 {
		return
	}

	var (
		oldestKey  K
		oldestTick uint64
		found      bool
	)
	for key, tick := range mc.access {
		if !found || tick < oldestTick {
			oldestKey, oldestTick, found = key, tick, true
		}
	}

	if found {
		mc.remove(oldestKey)
		mc.stats.Evictions++
	}
}
