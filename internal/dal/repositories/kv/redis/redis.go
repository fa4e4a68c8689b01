package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
)

// namespace prefixes every key to keep session state out of other consumers' way.
const namespace = "storefront:session:"

// KVRepository implements the key-value bridge over Redis.
type KVRepository struct {
	client *redis.Client
}

// MustNewKVRepository connects to Redis and pings it.
func MustNewKVRepository() *KVRepository {
	opts, err := redis.ParseURL(viper.GetString("redis.url"))
	if err != nil {
		panic(fmt.Sprintf("Failed to parse Redis URL: %v", err))
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	slog.Info("Redis connected")

	return &KVRepository{
		client: client,
	}
}

// Close closes the Redis connection for graceful shutdown.
func (r *KVRepository) Close() error {
	return r.client.Close()
}

// Read decodes the value stored under key into out. Missing and corrupt values
// read as absent; corrupt values are removed so the failure does not repeat.
func (r *KVRepository) Read(ctx context.Context, key string, out any) bool {
	raw, err := r.client.Get(ctx, namespace+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Error("Failed to read session state", "key", key, "error", err)
		}

		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		slog.Warn("Corrupt session state value, clearing", "key", key, "error", err)
		if err := r.Remove(ctx, key); err != nil {
			slog.Error("Failed to clear corrupt session state", "key", key, "error", err)
		}

		return false
	}

	return true
}

// Write stores the JSON encoding of value under key.
func (r *KVRepository) Write(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode session state value: %w", err)
	}

	if err := r.client.Set(ctx, namespace+key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}

	return nil
}

// Remove deletes the value stored under key.
func (r *KVRepository) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, namespace+key).Err(); err != nil {
		return fmt.Errorf("failed to remove session state: %w", err)
	}

	return nil
}
