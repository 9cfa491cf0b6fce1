package storage

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/sushnag22/pdf-generator/internal/application/document"
	"github.com/sushnag22/pdf-generator/pkg/logger"
)

// CachedStore is a read-through cache in front of another store. A stored name never
// changes content, so cached entries only expire to bound memory, never to refresh.
type CachedStore struct {
	next  document.Store
	cache *gocache.Cache
	log   *logger.Logger
}

// NewCachedStore wraps next with an in-memory cache of retrieved documents.
func NewCachedStore(next document.Store, ttl time.Duration, log *logger.Logger) *CachedStore {
	return &CachedStore{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
		log:   log.Named("storage.cache"),
	}
}

// EnsureDirectory delegates to the wrapped store.
func (c *CachedStore) EnsureDirectory(ctx context.Context) { c.next.EnsureDirectory(ctx) }

// Exists answers from the cache when possible.
func (c *CachedStore) Exists(ctx context.Context, name string) (bool, error) {
	if _, ok := c.cache.Get(name); ok {
		return true, nil
	}
	return c.next.Exists(ctx, name)
}

// Store delegates; the cache is only filled on reads.
func (c *CachedStore) Store(ctx context.Context, name string, data []byte) (document.StoreResult, error) {
	return c.next.Store(ctx, name, data)
}

// Retrieve serves cached bytes or loads and caches them.
func (c *CachedStore) Retrieve(ctx context.Context, name string) ([]byte, error) {
	if v, ok := c.cache.Get(name); ok {
		c.log.Debug().Str("file", name).Msg("cache hit")
		return v.([]byte), nil
	}
	data, err := c.next.Retrieve(ctx, name)
	if err != nil {
		return nil, err
	}
	// Keys outlive the call; never keep a caller-owned string.
	c.cache.SetDefault(strings.Clone(name), data)
	return data, nil
}

var _ document.Store = (*CachedStore)(nil)
