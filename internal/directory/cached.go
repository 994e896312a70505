package directory

import (
	"context"
	"fmt"
	"log"
	"time"

	"taskhub/backend/internal/cache"
)

// CachedClient is a read-through cache over a directory client. Directory
// pages change rarely, so a short TTL hides the provider's latency without
// staleness concerns. Cache failures degrade to a direct provider call.
type CachedClient struct {
	client Client
	cache  *cache.RedisCache
	ttl    time.Duration
}

func NewCachedClient(client Client, cacheInstance *cache.RedisCache, ttl time.Duration) *CachedClient {
	return &CachedClient{client: client, cache: cacheInstance, ttl: ttl}
}

func (c *CachedClient) ListUsers(ctx context.Context, prefix string, limit int, pageToken string) (Page, error) {
	key := fmt.Sprintf("directory:users:%s:%d:%s", prefix, limit, pageToken)

	var cached Page
	if err := c.cache.Get(key, &cached); err == nil {
		return cached, nil
	}

	page, err := c.client.ListUsers(ctx, prefix, limit, pageToken)
	if err != nil {
		return Page{}, err
	}

	if err := c.cache.Set(key, page, c.ttl); err != nil {
		log.Printf("directory cache set failed for %s: %v", key, err)
	}
	return page, nil
}
