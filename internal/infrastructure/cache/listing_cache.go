// Package cache keeps rendered invoice listing pages in Redis so the
// dashboard table does not hit Postgres on every keystroke of the search box.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/invoice-dashboard/pkg/helpers"
)

// ListingCache versions its keys instead of scanning for them: Invalidate
// bumps a counter and every page cached under the old version simply expires.
type ListingCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewListingCache(rdb *redis.Client, prefix string, ttl time.Duration) *ListingCache {
	return &ListingCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *ListingCache) versionKey() string {
	return c.prefix + ":ver"
}

func (c *ListingCache) pageKey(ver int64, query string, page int) string {
	return fmt.Sprintf("%s:v%d:q:%s:p:%d", c.prefix, ver, query, page)
}

func (c *ListingCache) version(ctx context.Context) (int64, error) {
	ver, err := c.rdb.Get(ctx, c.versionKey()).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return ver, err
}

// GetPage loads a cached page into dest, reporting whether it was present.
// Cache trouble is reported as a miss; the caller falls back to the store.
func GetPage[T any](ctx context.Context, c *ListingCache, query string, page int, dest *T) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	ver, err := c.version(ctx)
	if err != nil {
		return false
	}
	found, err := helpers.RedisGetJSON(ctx, c.rdb, c.pageKey(ver, query, page), dest)
	return err == nil && found
}

// SetPage stores one listing page under the current version. Best effort.
func SetPage[T any](ctx context.Context, c *ListingCache, query string, page int, value T) {
	if c == nil || c.rdb == nil {
		return
	}
	ver, err := c.version(ctx)
	if err != nil {
		return
	}
	_ = helpers.RedisSetJSON(ctx, c.rdb, c.pageKey(ver, query, page), value, c.ttl)
}

// Invalidate drops every cached listing page by moving to a new version.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Incr(ctx, c.versionKey()).Err()
}
