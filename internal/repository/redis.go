package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"roombooker/internal/config"
)

const tokenKeyPrefix = "auth_token:"

// RedisTokenStore keeps issued tokens in Redis so several API instances can
// honor each other's tokens. Keys are written without a TTL; tokens do not
// expire.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisClient builds a Redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Save(ctx context.Context, token string) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := s.client.Set(ctx, tokenKeyPrefix+token, "1", 0).Err(); err != nil {
		return fmt.Errorf("failed to save token in redis: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Valid(ctx context.Context, token string) (bool, error) {
	if s.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	if token == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token in redis: %w", err)
	}
	return n > 0, nil
}

// Ping verifies the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}
