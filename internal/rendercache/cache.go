// Package rendercache memoizes rendered chart bytes keyed by payload digest,
// so a re-synced but unchanged payload is never redrawn.
package rendercache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache holds rendered output for a bounded time.
type Cache struct {
	c *gocache.Cache
}

// New creates a cache whose entries expire after ttl and are swept every
// cleanup interval.
func New(ttl, cleanup time.Duration) *Cache {
	return &Cache{c: gocache.New(ttl, cleanup)}
}

// Key builds a cache key from its parts.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Get returns a cached rendering.
func (c *Cache) Get(key string) ([]byte, bool) {
	v, ok := c.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// Set stores a rendering with the default expiration.
func (c *Cache) Set(key string, b []byte) {
	c.c.Set(key, b, gocache.DefaultExpiration)
}

// GetOrRender returns the cached bytes for key or renders, stores and returns
// them. Render errors are not cached.
func (c *Cache) GetOrRender(key string, render func() ([]byte, error)) ([]byte, error) {
	if b, ok := c.Get(key); ok {
		return b, nil
	}
	b, err := render()
	if err != nil {
		return nil, err
	}
	c.Set(key, b)
	return b, nil
}

// Len returns the number of cached entries, including expired ones not yet
// swept.
func (c *Cache) Len() int {
	return c.c.ItemCount()
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.c.Flush()
}
