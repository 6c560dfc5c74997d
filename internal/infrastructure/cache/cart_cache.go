// internal/infrastructure/cache/cart_cache.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-bff/internal/config"
	"github.com/your-org/storefront-bff/internal/domain/cart"
)

// ErrCacheMiss is returned when no snapshot is cached for the user
var ErrCacheMiss = errors.New("cart cache: miss")

// CartCache persists the last authoritative cart snapshot per user so a new
// session can show the cart immediately while the refresh is in flight. It is
// a cache of server-confirmed state, never a source of truth: the next
// successful fetch overwrites whatever was rehydrated from here.
type CartCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewCartCache creates a Redis-backed cart snapshot cache
func NewCartCache(redisClient *redis.Client, cfg *config.Config) *CartCache {
	return &CartCache{
		redisClient: redisClient,
		ttl:         cfg.Redis.CartCacheTTL,
	}
}

func cartKey(userID uint) string {
	return fmt.Sprintf("cart_snapshot:%d", userID)
}

// Save stores the user's latest confirmed line items
func (c *CartCache) Save(ctx context.Context, userID uint, items []cart.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	if err := c.redisClient.Set(ctx, cartKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache cart snapshot: %w", err)
	}
	return nil
}

// Load returns the user's cached line items, or ErrCacheMiss
func (c *CartCache) Load(ctx context.Context, userID uint) ([]cart.Item, error) {
	data, err := c.redisClient.Get(ctx, cartKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	var items []cart.Item
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart snapshot: %w", err)
	}
	return items, nil
}

// Delete drops the user's cached snapshot, used on logout
func (c *CartCache) Delete(ctx context.Context, userID uint) error {
	return c.redisClient.Del(ctx, cartKey(userID)).Err()
}
