package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/servineo/backend/internal/domain/providers"
	redisclient "github.com/servineo/backend/internal/infrastructure/clients/redis"
)

// ErrMiss reports that the key is not cached. Callers fall back to the
// backing store on it; any other error means Redis itself misbehaved.
var ErrMiss = errors.New("cache miss")

// keyPrefix namespaces every cache entry so the keyspace can be shared
// with the event bus channels without collisions
const keyPrefix = "servineo:cache:"

// RedisAdapter backs the CacheProvider port with Redis. Its hottest
// tenant is the user contact cache the notification flow reads from.
type RedisAdapter struct {
	client *redisclient.Client
}

// NewRedisAdapter creates a new Redis cache adapter
func NewRedisAdapter(client *redisclient.Client) providers.CacheProvider {
	return &RedisAdapter{
		client: client,
	}
}

// Get returns the cached bytes for key, or ErrMiss when absent
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := a.client.Unwrap().Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache read for %q: %w", key, err)
	}
	return result, nil
}

// Set stores value under key for expirationSeconds
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	ttl := time.Duration(expirationSeconds) * time.Second
	if err := a.client.Unwrap().Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache write for %q: %w", key, err)
	}
	return nil
}

// Delete drops key from the cache; deleting an absent key is not an error
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := a.client.Unwrap().Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("cache invalidation for %q: %w", key, err)
	}
	return nil
}
