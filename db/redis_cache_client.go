package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCacheClient struct holds the Redis client and context
type RedisCacheClient struct {
	client *redis.Client
	ctx    context.Context
	logger *slog.Logger
}

// NewRedisCacheClient wraps client and checks the connection once.
func NewRedisCacheClient(ctx context.Context, client *redis.Client, logger *slog.Logger) (*RedisCacheClient, error) {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to redis at %s: %w", client.Options().Addr, err)
	}
	logger.Info("Connected to Redis", "addr", client.Options().Addr)

	return &RedisCacheClient{
		client: client,
		ctx:    ctx,
		logger: logger,
	}, nil
}

// Set sets a key-value pair in Redis
func (r *RedisCacheClient) Set(key, value string, ttl time.Duration) error {
	return r.client.Set(r.ctx, key, value, ttl).Err()
}

// Get retrieves the value for a given key from Redis
func (r *RedisCacheClient) Get(key string) (string, error) {
	val, err := r.client.Get(r.ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%s: %w", key, ErrKeyNotFound)
	}
	return val, err
}

func (r *RedisCacheClient) Del(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

// Keys uses SCAN rather than KEYS so a large cache does not block the server.
func (r *RedisCacheClient) Keys(pattern string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(r.ctx, 0, pattern, 100).Iterator()
	for iter.Next(r.ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys %q: %w", pattern, err)
	}
	return keys, nil
}

func (r *RedisCacheClient) Ping() error {
	_, err := r.client.Ping(r.ctx).Result()
	return err
}

func (r *RedisCacheClient) Close() error {
	return r.client.Close()
}
