package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"pushgraph/internal/user/models"
	"pushgraph/pkg/rdf"
)

// DefaultRedisKey is the hash holding account IRI -> display name.
const DefaultRedisKey = "pushgraph:users"

// RedisCache shares resolved users between instances through one Redis hash.
type RedisCache struct {
	client redis.Cmdable
	key    string
}

// NewRedis builds a RedisCache on client. An empty key uses DefaultRedisKey.
func NewRedis(client redis.Cmdable, key string) *RedisCache {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisCache{client: client, key: key}
}

func (c *RedisCache) Get(ctx context.Context, uri rdf.IRI) (*models.User, bool, error) {
	name, err := c.client.HGet(ctx, c.key, uri.String()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis hget user: %w", err)
	}
	return &models.User{URI: uri, Name: name}, true, nil
}

func (c *RedisCache) Put(ctx context.Context, user *models.User) error {
	if err := c.client.HSet(ctx, c.key, user.URI.String(), user.Name).Err(); err != nil {
		return fmt.Errorf("redis hset user: %w", err)
	}
	return nil
}
