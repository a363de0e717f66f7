package db

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/yumyai/scagaire/logger"
	"go.uber.org/zap"
)

// CachedStore memoizes gene lookups of a slower Store, such as an SQLite index
// shared by many HTTP requests. Cached maps must be treated as read-only.
type CachedStore struct {
	store Store
	cache *cache.Cache

	hits   atomic.Int64
	misses atomic.Int64
}

func NewCachedStore(store Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		store: store,
		cache: cache.New(ttl, ttl*2),
	}
}

func (c *CachedStore) GenesFor(species, database string) (map[string]int, error) {

	cacheKey := fmt.Sprintf("genes:%s:%s", species, database)

	if cached, found := c.cache.Get(cacheKey); found {
		if genes, ok := cached.(map[string]int); ok {
			c.hits.Add(1)
			return genes, nil
		}
	}
	c.misses.Add(1)

	genes, err := c.store.GenesFor(species, database)
	if err != nil {
		return nil, err
	}

	c.cache.Set(cacheKey, genes, cache.DefaultExpiration)
	logger.Debug("Cached species genes",
		zap.String("species", species),
		zap.String("database", database),
		zap.Int("genes", len(genes)))

	return genes, nil
}

func (c *CachedStore) ListSpecies() ([]string, error) {
	return c.list("species", c.store.ListSpecies)
}

func (c *CachedStore) ListDatabases() ([]string, error) {
	return c.list("databases", c.store.ListDatabases)
}

func (c *CachedStore) list(cacheKey string, load func() ([]string, error)) ([]string, error) {

	if cached, found := c.cache.Get(cacheKey); found {
		if v, ok := cached.([]string); ok {
			c.hits.Add(1)
			return v, nil
		}
	}
	c.misses.Add(1)

	v, err := load()
	if err != nil {
		return nil, err
	}
	c.cache.Set(cacheKey, v, cache.DefaultExpiration)
	return v, nil
}

func (c *CachedStore) Close() error {
	c.cache.Flush()
	return c.store.Close()
}

// Stats returns the number of cache hits and misses so far.
func (c *CachedStore) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
