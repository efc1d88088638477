// Package cache provides a small in-memory read cache for catalog responses.
// Entries expire after the configured TTL; writes to the underlying data
// invalidate the affected prefix eagerly rather than waiting for expiry.
package cache

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/mercato-api/mercato/internal/config"
)

// Cache wraps bigcache with byte-slice values and prefix invalidation.
type Cache struct {
	backend *bigcache.BigCache
	logger  *slog.Logger

	// bigcache has no key iteration-with-delete, so invalidated prefixes are
	// tracked with a generation counter folded into the key.
	mu          sync.RWMutex
	generations map[string]uint64
}

// New creates a cache with the TTL from configuration.
// If log is nil, a default logger is used.
func New(cfg config.CacheConfig, log *slog.Logger) (*Cache, error) {
	if log == nil {
		log = slog.Default()
	}

	ttl := time.Duration(cfg.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}

	backend, err := bigcache.New(context.Background(), bigcache.DefaultConfig(ttl))
	if err != nil {
		return nil, err
	}

	return &Cache{
		backend:     backend,
		logger:      log.With(slog.String("component", "cache")),
		generations: map[string]uint64{},
	}, nil
}

// Get returns the cached value for key under the prefix, if present.
func (c *Cache) Get(prefix, key string) ([]byte, bool) {
	value, err := c.backend.Get(c.qualify(prefix, key))
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set stores the value for key under the prefix.
func (c *Cache) Set(prefix, key string, value []byte) {
	if err := c.backend.Set(c.qualify(prefix, key), value); err != nil {
		c.logger.Warn("failed to cache entry", "prefix", prefix, "error", err)
	}
}

// Invalidate discards every entry stored under the prefix.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[prefix]++
}

// Close releases the cache's resources.
func (c *Cache) Close() error {
	return c.backend.Close()
}

func (c *Cache) qualify(prefix, key string) string {
	c.mu.RLock()
	gen := c.generations[prefix]
	c.mu.RUnlock()

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('#')
	b.WriteString(strconv.FormatUint(gen, 10))
	b.WriteByte('#')
	b.WriteString(key)
	return b.String()
}
