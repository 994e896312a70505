package directory_test

import (
	"context"
	"testing"
	"time"

	"taskhub/backend/internal/cache"
	"taskhub/backend/internal/directory"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	inner directory.Client
	calls int
}

func (c *countingClient) ListUsers(ctx context.Context, prefix string, limit int, pageToken string) (directory.Page, error) {
	c.calls++
	return c.inner.ListUsers(ctx, prefix, limit, pageToken)
}

func TestCachedClientServesSecondCallFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	redisCache := cache.NewRedisCache(&cache.CacheConfig{
		Addr:         mr.Addr(),
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	t.Cleanup(func() { redisCache.Close() })

	counting := &countingClient{inner: directory.NewStaticClient([]string{"alice", "bob"})}
	cached := directory.NewCachedClient(counting, redisCache, time.Minute)
	ctx := context.Background()

	first, err := cached.ListUsers(ctx, "", 10, "")
	require.NoError(t, err)
	second, err := cached.ListUsers(ctx, "", 10, "")
	require.NoError(t, err)

	assert.Equal(t, first.Usernames, second.Usernames)
	assert.Equal(t, 1, counting.calls, "second call must be a cache hit")
}

func TestCachedClientDistinguishesQueries(t *testing.T) {
	mr := miniredis.RunT(t)
	redisCache := cache.NewRedisCache(&cache.CacheConfig{
		Addr:         mr.Addr(),
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	t.Cleanup(func() { redisCache.Close() })

	counting := &countingClient{inner: directory.NewStaticClient([]string{"alice", "bob"})}
	cached := directory.NewCachedClient(counting, redisCache, time.Minute)
	ctx := context.Background()

	all, err := cached.ListUsers(ctx, "", 10, "")
	require.NoError(t, err)
	filtered, err := cached.ListUsers(ctx, "a", 10, "")
	require.NoError(t, err)

	assert.Len(t, all.Usernames, 2)
	assert.Equal(t, []string{"alice"}, filtered.Usernames)
	assert.Equal(t, 2, counting.calls)
}
