package chatbot

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const contextCacheKey = "chatbot:context"

// contextCache keeps the assembled portfolio context block in Redis for a
// short TTL so a burst of chat traffic does not hammer the document store.
// A nil client disables caching.
type contextCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newContextCache(client *redis.Client, ttl time.Duration) *contextCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &contextCache{client: client, ttl: ttl}
}

func (c *contextCache) get(ctx context.Context) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	v, err := c.client.Get(ctx, contextCacheKey).Result()
	if err != nil {
		// redis.Nil and transport errors are both cache misses
		return "", false
	}
	return v, true
}

func (c *contextCache) set(ctx context.Context, value string) {
	if c == nil || c.client == nil {
		return
	}
	// best effort; a failed write only costs a rebuild next request
	_ = c.client.Set(ctx, contextCacheKey, value, c.ttl).Err()
}
