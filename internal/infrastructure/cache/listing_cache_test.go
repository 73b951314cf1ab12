package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type page struct {
	Items []string `json:"items"`
	Page  int      `json:"page"`
}

func newTestCache(t *testing.T) (*ListingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewListingCache(rdb, "invoices:listing", time.Minute), mr
}

func TestListingCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var got page
	assert.False(t, GetPage(ctx, c, "acme", 1, &got))

	SetPage(ctx, c, "acme", 1, page{Items: []string{"a", "b"}, Page: 1})
	require.True(t, GetPage(ctx, c, "acme", 1, &got))
	assert.Equal(t, []string{"a", "b"}, got.Items)

	// other query and page keys stay cold
	assert.False(t, GetPage(ctx, c, "acme", 2, &got))
	assert.False(t, GetPage(ctx, c, "other", 1, &got))
}

func TestListingCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	SetPage(ctx, c, "", 1, page{Page: 1})
	var got page
	require.True(t, GetPage(ctx, c, "", 1, &got))

	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, GetPage(ctx, c, "", 1, &got), "old version must not be served")

	// cache works again under the new version
	SetPage(ctx, c, "", 1, page{Page: 1})
	assert.True(t, GetPage(ctx, c, "", 1, &got))
}

func TestListingCacheNilSafe(t *testing.T) {
	ctx := context.Background()
	var c *ListingCache

	var got page
	assert.False(t, GetPage(ctx, c, "", 1, &got))
	SetPage(ctx, c, "", 1, page{})
	assert.NoError(t, c.Invalidate(ctx))
}

func TestListingCacheRedisDownIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	SetPage(ctx, c, "", 1, page{Page: 1})
	mr.Close()

	var got page
	assert.False(t, GetPage(ctx, c, "", 1, &got))
}
