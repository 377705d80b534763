// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
)

// DefaultCleanupInterval is how often expired entries are swept.
const DefaultCleanupInterval = 5 * time.Minute

// Entry represents a cached item with expiration
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Stats is a point-in-time view of cache counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Observer is notified of every lookup. It is used to feed Prometheus.
type Observer func(hit bool)

// Option configures a Cache.
type Option func(*Cache)

// WithCleanupInterval overrides the background sweep interval. Zero or a
// negative value disables the sweeper; expired entries are still dropped
// lazily on Get.
func WithCleanupInterval(d time.Duration) Option {
	return func(c *Cache) { c.cleanupInterval = d }
}

// WithClock replaces time.Now. Tests use it to expire entries without
// sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithObserver registers a lookup observer.
func WithObserver(o Observer) Option {
	return func(c *Cache) { c.observer = o }
}

// Cache provides a thread-safe in-memory cache with TTL support
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration

	cleanupInterval time.Duration
	now             func() time.Time
	observer        Observer

	hits        atomic.Int64
	misses      atomic.Int64
	evictions   atomic.Int64
	lastCleanup atomic.Int64

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a cache whose entries live for ttl unless set with an
// explicit TTL. A background goroutine sweeps expired entries until Close.
//
//	c := cache.New(10 * time.Minute)
//	defer c.Close()
//	c.Set("tools", tools)
//	if v, ok := c.Get("tools"); ok {
//	    ...
//	}
func New(ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		entries:         make(map[string]Entry),
		ttl:             ttl,
		cleanupInterval: DefaultCleanupInterval,
		now:             time.Now,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastCleanup.Store(c.now().UnixNano())

	if c.cleanupInterval > 0 {
		go c.cleanupLoop()
	}
	return c
}

// TTL returns the default entry lifetime.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the value for key. Expired entries are removed and reported
// as a miss.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if !c.now().Before(entry.ExpiresAt) {
		c.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry.
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.ExpiresAt) {
			delete(c.entries, key)
			c.evictions.Add(1)
		}
		c.mu.Unlock()
		c.recordMiss()
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with a custom TTL.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

// Delete removes key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.evictions.Add(1)
	}
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	n := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.evictions.Add(n)
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns current cache statistics.
func (c *Cache) GetStats() Stats {
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		TotalKeys:   int64(c.Len()),
		LastCleanup: time.Unix(0, c.lastCleanup.Load()),
	}
}

// HitRate returns the hit percentage (0-100).
func (c *Cache) HitRate() float64 {
	hits, misses := c.hits.Load(), c.misses.Load()
	total := hits + misses
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total) * 100.0
}

// Close stops the background sweeper. It is safe to call more than once.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Closed reports whether Close has been called.
func (c *Cache) Closed() bool {
	select {
	case <-c.stop:
		return true
	default:
		return false
	}
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache) cleanup() {
	now := c.now()
	c.mu.Lock()
	var evicted int64
	for key, entry := range c.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	c.mu.Unlock()

	c.evictions.Add(evicted)
	c.lastCleanup.Store(now.UnixNano())
}

func (c *Cache) recordHit() {
	c.hits.Add(1)
	if c.observer != nil {
		c.observer(true)
	}
}

func (c *Cache) recordMiss() {
	c.misses.Add(1)
	if c.observer != nil {
		c.observer(false)
	}
}

// GenerateKey builds a cache key from a prefix and the JSON form of params.
// Map keys are sorted by the encoder, so equal parameter sets hash equally.
func GenerateKey(prefix string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", prefix, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", prefix, hash[:16])
}
