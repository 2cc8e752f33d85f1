package cache

import (
	"time"

	"azm-catalog-backend/pkg/cache"
	"azm-catalog-backend/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache struct {
	store *gocache.Cache

	// snapshotPath, when non-empty, names a file the store is mirrored to after
	// every write. Snapshot I/O errors degrade silently to "no cache".
	snapshotPath string
}

// NewMemoryCache creates a new in-memory cache service
// defaultExpiration: default TTL for items
// cleanupInterval: how often to scan for expired items
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) cache.CacheService {
	return &memoryCache{
		store: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// NewSnapshotCache is a memory cache whose contents survive restarts through a
// best-effort file snapshot. A missing or unreadable snapshot is ignored;
// per-entry expirations are kept, so stale entries still read as misses after
// a reload.
func NewSnapshotCache(path string, defaultExpiration, cleanupInterval time.Duration) cache.CacheService {
	c := &memoryCache{
		store:        gocache.New(defaultExpiration, cleanupInterval),
		snapshotPath: path,
	}
	if path != "" {
		if err := c.store.LoadFile(path); err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("Cache snapshot not loaded")
		}
	}
	return c
}

func (c *memoryCache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *memoryCache) Set(key string, value interface{}, duration time.Duration) {
	c.store.Set(key, value, duration)
	c.snapshot()
}

func (c *memoryCache) Delete(key string) {
	c.store.Delete(key)
	c.snapshot()
}

func (c *memoryCache) Flush() {
	c.store.Flush()
	c.snapshot()
}

func (c *memoryCache) snapshot() {
	if c.snapshotPath == "" {
		return
	}
	if err := c.store.SaveFile(c.snapshotPath); err != nil {
		logger.Debug().Err(err).Str("path", c.snapshotPath).Msg("Cache snapshot not saved")
	}
}
