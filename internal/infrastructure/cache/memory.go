package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ecoyoung/packform/internal/domain"
)

// cleanupInterval is how often expired detections are swept
const cleanupInterval = 10 * time.Minute

// cacheItem represents a single detection in the cache with expiration
type cacheItem struct {
	Value      domain.Detection
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory detection cache with TTL support
type MemoryCache struct {
	data       map[string]cacheItem
	mutex      sync.RWMutex
	maxEntries int
	done       chan struct{}
	closeOnce  sync.Once
}

// NewMemoryCache creates a new in-memory cache. maxEntries <= 0 means unbounded.
func NewMemoryCache(maxEntries int) *MemoryCache {
	cache := &MemoryCache{
		data:       make(map[string]cacheItem),
		maxEntries: maxEntries,
		done:       make(chan struct{}),
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves a detection from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) (domain.Detection, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.Expiration) {
		return domain.Detection{}, domain.ErrCacheMiss
	}

	return cloneDetection(item.Value), nil
}

// Set stores a detection in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value domain.Detection, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.data[key]; !exists && c.maxEntries > 0 && len(c.data) >= c.maxEntries {
		c.evictLocked()
	}

	// Stored values are copies so callers cannot mutate cached slices
	c.data[key] = cacheItem{
		Value:      cloneDetection(value),
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// evictLocked drops expired entries, or the entry closest to expiry when none have expired.
func (c *MemoryCache) evictLocked() {
	now := time.Now()
	var (
		oldestKey string
		oldest    time.Time
	)
	removed := false
	for key, item := range c.data {
		if now.After(item.Expiration) {
			delete(c.data, key)
			removed = true
			continue
		}
		if oldestKey == "" || item.Expiration.Before(oldest) {
			oldestKey, oldest = key, item.Expiration
		}
	}
	if !removed && oldestKey != "" {
		delete(c.data, oldestKey)
	}
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mutex.Lock()
			now := time.Now()
			for key, item := range c.data {
				if now.After(item.Expiration) {
					delete(c.data, key)
				}
			}
			c.mutex.Unlock()
		}
	}
}

// Close stops the cleanup goroutine
func (c *MemoryCache) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Size returns the current number of items in the cache (exported as a gauge)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

func cloneDetection(d domain.Detection) domain.Detection {
	return domain.Detection{
		Categories: append([]domain.Category(nil), d.Categories...),
		Evidence:   append([]string(nil), d.Evidence...),
	}
}
