package cache

import "context"

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() *NullCache {
	return &NullCache{}
}

// Read always returns a cache miss.
func (c *NullCache) Read(ctx context.Context, key string) (Entry, bool, error) {
	return Entry{}, false, nil
}

// Write does nothing.
func (c *NullCache) Write(ctx context.Context, key string, data []byte) error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
