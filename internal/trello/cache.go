package trello

import (
	"context"
	"sync"
)

// Cache stores raw response bodies keyed by CacheKey.
type Cache interface {
	Lookup(ctx context.Context, key string) ([]byte, bool, error)
	Store(ctx context.Context, key string, body []byte) error
	Purge(ctx context.Context) error
}

// CacheKey identifies a response by method and path, e.g. "GET_/boards/abc".
func CacheKey(method, path string) string {
	return method + "_" + path
}

// MemoryCache is a session-scoped Cache. Concurrent fetches of the same key
// are not deduplicated; the last Store wins.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

func (c *MemoryCache) Lookup(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	body, ok := c.entries[key]
	return body, ok, nil
}

func (c *MemoryCache) Store(_ context.Context, key string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = body
	return nil
}

func (c *MemoryCache) Purge(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
	return nil
}

// Len returns the number of cached responses.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

var _ Cache = (*MemoryCache)(nil)
