// Package cache holds recently scraped vehicle records in memory.
// Manufacturer pages change rarely, so repeat lookups for the same URL
// can skip the fetch entirely when the caller opts in via max_age.
package cache

import (
	"sync"
	"time"

	"github.com/bhaveshd9/carspec/models"
)

// entry holds a cached record with its creation timestamp.
type entry struct {
	record    *models.VehicleRecord
	createdAt time.Time
}

// Cache is a simple in-memory cache of vehicle records keyed by URL.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
}

// New creates a Cache with the given maximum number of entries.
// A background goroutine runs every 5 minutes to evict entries older
// than 1 hour.
func New(maxEntries int) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a cached record if it exists and is younger than maxAge.
// maxAge is in milliseconds; maxAge <= 0 disables the lookup.
func (c *Cache) Get(url string, maxAgeMs int) (*models.VehicleRecord, bool) {
	if maxAgeMs <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.store[url]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if time.Since(e.createdAt) > time.Duration(maxAgeMs)*time.Millisecond {
		return nil, false
	}
	return e.record, true
}

// Set stores a record for the URL. When the cache is full, the oldest
// entry is evicted first.
func (c *Cache) Set(url string, record *models.VehicleRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.store[url] = &entry{record: record, createdAt: time.Now()}
}

// evictOldestLocked removes the entry with the oldest createdAt.
// Caller must hold the write lock.
func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for k, e := range c.store {
		if oldestKey == "" || e.createdAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.createdAt
		}
	}
	if oldestKey != "" {
		delete(c.store, oldestKey)
	}
}

// cleanupLoop evicts entries older than 1 hour, every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-1 * time.Hour)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
