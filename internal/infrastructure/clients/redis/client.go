package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/servineo/backend/pkg/config"
)

// connectTimeout bounds the startup ping so a dead Redis fails fast
// instead of blocking boot
const connectTimeout = 5 * time.Second

// Client wraps the go-redis connection shared by the user read-through
// cache and the appointment event bus.
type Client struct {
	client *redis.Client
}

// NewClient connects to Redis and verifies the connection before
// handing it out
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis unreachable at %s: %w", cfg.RedisAddr(), err)
	}

	return &Client{client: client}, nil
}

// Unwrap exposes the underlying go-redis client to the adapters
func (c *Client) Unwrap() *redis.Client {
	return c.client
}

// Ping verifies the connection, used by health checks
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the connection pool
func (c *Client) Close() error {
	return c.client.Close()
}
