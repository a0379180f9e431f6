package redis_utils

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fleet/src/config"

	"github.com/redis/go-redis/v9"
)

// RedisHandler encapsulates the Redis client and provides JSON helpers.
type RedisHandler struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisHandler connects to the configured Redis instance.
func NewRedisHandler(ctx context.Context, cfg *config.Config) (*RedisHandler, error) {
	opts := &redis.Options{
		Addr:     cfg.Databases.Redis.Host + ":" + cfg.Databases.Redis.Port,
		Username: cfg.Databases.Redis.Username,
		Password: cfg.Databases.Redis.Password, // Leave empty for no password
		DB:       cfg.Databases.Redis.Database,
	}
	if cfg.Databases.Redis.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return NewRedisHandlerFromClient(ctx, redis.NewClient(opts), cfg.Databases.Redis.KeyPrefix)
}

func NewRedisHandlerFromClient(ctx context.Context, client *redis.Client, keyPrefix string) (*RedisHandler, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisHandler{client: client, keyPrefix: keyPrefix}, nil
}

func (r *RedisHandler) key(k string) string {
	return r.keyPrefix + k
}

// Set stores value as JSON under key with an optional expiration.
func (r *RedisHandler) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}
	return r.client.Set(ctx, r.key(key), data, expiration).Err()
}

// Get decodes the JSON stored under key into result. found is false when the
// key does not exist.
func (r *RedisHandler) Get(ctx context.Context, key string, result interface{}) (bool, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to get key: %w", err)
	}

	if err := json.Unmarshal(data, result); err != nil {
		return false, fmt.Errorf("failed to deserialize value: %w", err)
	}
	return true, nil
}

func (r *RedisHandler) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *RedisHandler) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key existence: %w", err)
	}
	return count > 0, nil
}

func (r *RedisHandler) Close() error {
	return r.client.Close()
}
