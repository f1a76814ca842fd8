package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkpress/blog-api/internal/api/metrics"
	"github.com/inkpress/blog-api/internal/core/domain"
)

const recentPostsKey = "posts:recent"

// PostCache caches the recent-posts feed in Redis as a JSON blob. Writes to
// the posts collection invalidate the key, so the TTL only bounds staleness
// when invalidation is missed (e.g. a concurrent writer crashing mid-request).
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPostCache(client *redis.Client, ttl time.Duration) *PostCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &PostCache{client: client, ttl: ttl}
}

// Get returns the cached feed, or (nil, nil) on a miss.
func (c *PostCache) Get(ctx context.Context) ([]*domain.Post, error) {
	b, err := c.client.Get(ctx, recentPostsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.PostCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("post cache get: %w", err)
	}

	var posts []*domain.Post
	if err := json.Unmarshal(b, &posts); err != nil {
		return nil, fmt.Errorf("post cache decode: %w", err)
	}
	metrics.PostCacheTotal.WithLabelValues("hit").Inc()
	return posts, nil
}

// Set stores the feed, expiring after the configured TTL.
func (c *PostCache) Set(ctx context.Context, posts []*domain.Post) error {
	b, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("post cache encode: %w", err)
	}
	return c.client.Set(ctx, recentPostsKey, b, c.ttl).Err()
}

// Invalidate drops the cached feed after any post mutation.
func (c *PostCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, recentPostsKey).Err()
}
