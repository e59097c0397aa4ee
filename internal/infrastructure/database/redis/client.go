// Package redis provides the Redis client wrapper and the analysis result
// cache built on it.  The cache is deliberately forgiving: every failure maps
// to a cache miss at the application layer, never to a failed request.
package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/CarePath-Insight/internal/config"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CarePath-Insight/pkg/errors"
)

// ErrClientClosed is returned by operations on a closed client.
var ErrClientClosed = errors.New(errors.ErrCodeInternal, "redis client is closed")

// Client wraps the go-redis client with lifecycle management.
type Client struct {
	rdb    *redis.Client
	cfg    config.RedisConfig
	logger logging.Logger
	mu     sync.RWMutex
	closed bool
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(cfg config.RedisConfig, log logging.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "redis connection failed")
	}

	log.Info("connected to Redis", logging.String("addr", cfg.Addr), logging.Int("db", cfg.DB))
	return &Client{rdb: rdb, cfg: cfg, logger: log}, nil
}

// NewClientFromRedis wraps an existing go-redis client (for testing against
// miniredis).
func NewClientFromRedis(rdb *redis.Client, cfg config.RedisConfig, log logging.Logger) *Client {
	return &Client{rdb: rdb, cfg: cfg, logger: log}
}

// Raw exposes the underlying go-redis client.
func (c *Client) Raw() *redis.Client {
	return c.rdb
}

// HealthCheck pings the server.
func (c *Client) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "redis health check failed")
	}
	return nil
}

// Close shuts the connection pool down.  Safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.rdb.Close(); err != nil {
		c.logger.Error("failed to close Redis client", logging.Err(err))
		return err
	}
	c.logger.Info("closed Redis client")
	return nil
}
