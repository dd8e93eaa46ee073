// Package redis implements the optional Redis cache in front of the chat
// platform's display-name directory. Name lookups are network round-trips
// against the Telegram API; caching them keeps progress rendering cheap and
// spares the API rate limit. The bot runs fine without Redis - the cache is a
// decorator, not a dependency.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitcrew-hub/fitcrew-bot/internal/application/tracker"
)

// PrefixDisplayName namespaces cached display-name keys.
const PrefixDisplayName = "name:"

// TTLDisplayName is how long a resolved display name stays cached. Names
// change rarely; an hour keeps renames from sticking around too long.
const TTLDisplayName = time.Hour

// NewClient creates a Redis client from a connection URL and verifies the
// connection.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: failed to parse URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: failed to ping: %w", err)
	}

	return client, nil
}

// NameCache caches resolved display names in front of another directory.
type NameCache struct {
	inner  tracker.Directory
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewNameCache wraps a directory with a Redis TTL cache.
func NewNameCache(inner tracker.Directory, client *redis.Client, logger *slog.Logger) *NameCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &NameCache{
		inner:  inner,
		client: client,
		ttl:    TTLDisplayName,
		logger: logger.With("component", "name_cache"),
	}
}

// DisplayName implements tracker.Directory. Cache failures fall through to
// the inner directory; only inner-lookup failures propagate.
func (c *NameCache) DisplayName(ctx context.Context, chatID int64, userID string) (string, error) {
	key := fmt.Sprintf("%s%d:%s", PrefixDisplayName, chatID, userID)

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil && cached != "" {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		c.logger.Warn("name cache read failed", "error", err)
	}

	name, err := c.inner.DisplayName(ctx, chatID, userID)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, key, name, c.ttl).Err(); err != nil {
		c.logger.Warn("name cache write failed", "error", err)
	}
	return name, nil
}
