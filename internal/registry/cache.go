package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/laraui-labs/laraui/internal/manifest"
)

// CacheTTL is how long a fetched manifest is served without refetching.
const CacheTTL = time.Hour

// cacheEntry is an immutable cached manifest. Refreshing replaces the whole
// entry; nothing ever mutates one in place.
type cacheEntry struct {
	Key       string             `json:"key"`
	URL       string             `json:"url"`
	Manifest  *manifest.Manifest `json:"manifest"`
	ExpiresAt time.Time          `json:"expires_at"`
}

func (e *cacheEntry) valid(now time.Time) bool {
	return e != nil && e.Manifest != nil && now.Before(e.ExpiresAt)
}

// CacheKey hashes a registry base URL into the key used by both caches.
func CacheKey(baseURL string) string {
	sum := sha256.Sum256([]byte(baseURL))
	return hex.EncodeToString(sum[:])
}

// MemoryCache holds manifests for the lifetime of the process, keyed by
// registry URL hash.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

// NewMemoryCache returns an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*cacheEntry)}
}

func (c *MemoryCache) get(key string, now time.Time) *cacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry := c.entries[key]
	if !entry.valid(now) {
		return nil
	}
	return entry
}

func (c *MemoryCache) put(entry *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.Key] = entry
}
