// Package cache provides a small concurrency-safe TTL cache, used to avoid
// repeating transport lookups for the same conversation.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	data    T
	setAt   time.Time
	expires time.Time
}

// TTLCache caches values with per-entry expiry and a hard size cap. When
// full, Set evicts the entry with the oldest insertion time.
type TTLCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]entry[T]
}

func NewTTL[T any](maxSize int, ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]entry[T]),
	}
}

func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if time.Now().After(e.expires) {
		delete(c.items, key)
		return zero, false
	}
	return e.data, true
}

func (c *TTLCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if _, ok := c.items[key]; !ok && len(c.items) >= c.maxSize {
		c.evictOldestLocked()
	}
	c.items[key] = entry[T]{data: data, setAt: now, expires: now.Add(c.ttl)}
}

func (c *TTLCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *TTLCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *TTLCache[T]) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	first := true
	for k, e := range c.items {
		if first || e.setAt.Before(oldest) {
			oldestKey, oldest = k, e.setAt
			first = false
		}
	}
	if !first {
		delete(c.items, oldestKey)
	}
}
