package tokenstore

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultRedisKey = "glosshouse:session:token"

// Redis stores the token in Redis under a fixed key. Useful when the SDK
// runs inside a service that shares session state across processes.
type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// RedisConfig holds Redis store configuration.
type RedisConfig struct {
	// Client is the Redis connection. Required.
	Client *redis.Client
	// Key overrides the storage key. Optional.
	Key string
	// TTL expires the token after the given duration. Zero means no expiry.
	TTL time.Duration
}

// NewRedis creates a Redis-backed token store.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("tokenstore: redis client is required")
	}

	key := cfg.Key
	if key == "" {
		key = defaultRedisKey
	}

	return &Redis{client: cfg.Client, key: key, ttl: cfg.TTL}, nil
}

// Save persists the token.
func (r *Redis) Save(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, r.key, token, r.ttl).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis set: %w", err)
	}
	return nil
}

// Load returns the persisted token.
func (r *Redis) Load(ctx context.Context) (string, error) {
	val, err := r.client.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: redis get: %w", err)
	}
	if val == "" {
		return "", ErrNotFound
	}
	return val, nil
}

// Clear removes the persisted token.
func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("tokenstore: redis del: %w", err)
	}
	return nil
}
