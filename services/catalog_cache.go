package services

import (
	"sync"
	"time"
)

// DefaultCatalogTTL é a validade padrão da listagem VOD.
const DefaultCatalogTTL = 6 * time.Hour

// CatalogCache é o serviço de cache explícito do catálogo: Get/Set/
// Invalidate com TTL, sem singleton de módulo.
type CatalogCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get -> valor e flag de presença; entrada vencida conta como ausente.
func (c *CatalogCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.Invalidate(key)
		return nil, false
	}
	return entry.value, true
}

func (c *CatalogCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *CatalogCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
