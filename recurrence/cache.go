package recurrence

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/zebedeu/agendcore/calendar"
)

// CacheConfig holds configuration for the expansion cache.
type CacheConfig struct {
	TTL             time.Duration // How long entries stay valid
	MaxEntries      int           // Maximum number of entries before eviction
	CleanupInterval time.Duration // How often expired entries are swept
}

// DefaultCacheConfig suits a view that re-renders on every input change.
var DefaultCacheConfig = CacheConfig{
	TTL:             15 * time.Minute,
	MaxEntries:      256,
	CleanupInterval: 5 * time.Minute,
}

type cacheEntry struct {
	instances  []calendar.EventInstance
	expiresAt  time.Time
	accessedAt time.Time
}

// Cache memoizes Expand results per (event set, window) pair. The core keeps
// expansion pure; callers that re-render often can wrap their Expander in a
// Cache instead of memoizing themselves.
type Cache struct {
	expander *Expander

	mu          sync.RWMutex
	entries     map[string]*cacheEntry
	ttl         time.Duration
	maxEntries  int
	stopCleanup chan struct{}
}

// NewCache wraps expander with a memoizing layer. Close must be called when
// the cache is no longer needed.
func NewCache(expander *Expander, cfg CacheConfig) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheConfig.TTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultCacheConfig.MaxEntries
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCacheConfig.CleanupInterval
	}

	c := &Cache{
		expander:    expander,
		entries:     make(map[string]*cacheEntry),
		ttl:         cfg.TTL,
		maxEntries:  cfg.MaxEntries,
		stopCleanup: make(chan struct{}),
	}

	go c.cleanupLoop(cfg.CleanupInterval)
	return c
}

// Expand returns the cached expansion for the given inputs, computing and
// storing it on a miss.
func (c *Cache) Expand(events []calendar.Event, window calendar.ViewWindow) []calendar.EventInstance {
	key := cacheKey(events, window)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	now := time.Now()
	if ok && now.Before(entry.expiresAt) {
		c.mu.Lock()
		entry.accessedAt = now
		c.mu.Unlock()
		return entry.instances
	}

	instances := c.expander.Expand(events, window)

	c.mu.Lock()
	c.entries[key] = &cacheEntry{
		instances:  instances,
		expiresAt:  now.Add(c.ttl),
		accessedAt: now,
	}
	if len(c.entries) > c.maxEntries {
		c.evictLocked()
	}
	c.mu.Unlock()

	return instances
}

// Close stops the cleanup goroutine and clears the cache.
func (c *Cache) Close() {
	close(c.stopCleanup)
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of live cache entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictLocked removes expired entries, then least-recently-accessed entries
// until the cache fits. Caller holds the write lock.
func (c *Cache) evictLocked() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}

	if len(c.entries) <= c.maxEntries {
		return
	}

	type keyAccess struct {
		key        string
		accessedAt time.Time
	}
	ordered := make([]keyAccess, 0, len(c.entries))
	for key, entry := range c.entries {
		ordered = append(ordered, keyAccess{key, entry.accessedAt})
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].accessedAt.Before(ordered[j].accessedAt)
	})

	toRemove := len(c.entries) - c.maxEntries
	for i := 0; i < toRemove && i < len(ordered); i++ {
		delete(c.entries, ordered[i].key)
	}
}

func (c *Cache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.evictLocked()
			c.mu.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}

// cacheKey digests every input that can change an expansion result.
func cacheKey(events []calendar.Event, window calendar.ViewWindow) string {
	hasher := sha256.New()

	hasher.Write([]byte(window.Start.UTC().Format(time.RFC3339Nano)))
	hasher.Write([]byte(window.End.UTC().Format(time.RFC3339Nano)))
	hasher.Write([]byte(window.Timezone))

	for _, ev := range events {
		// Content fields are copied into every instance, so an edit to
		// any of them must miss the cache. %v prints maps with sorted
		// keys, keeping the digest stable.
		fmt.Fprintf(hasher, "%s|%v|%v|%s|%s|%t|%t|%s|%s|%v|%v;",
			ev.ID, ev.Start, ev.End, ev.Timezone, ev.RecurrenceRule, ev.AllDay, ev.MultiDay,
			ev.Title, ev.Color, ev.Resources, ev.Metadata)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil))
}
