package session

import (
	"autoDetailing/internal/config"
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"time"
)

// RedisStore maps session ids to user ids with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) Create(ctx context.Context, userID string) (string, time.Time, error) {
	if s.client == nil {
		return "", time.Time{}, fmt.Errorf("redis client is nil")
	}

	id := uuid.NewString()
	expiresAt := time.Now().Add(s.ttl)

	if err := s.client.Set(ctx, keyPrefix+id, userID, s.ttl).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store session in redis: %w", err)
	}

	return id, expiresAt, nil
}

func (s *RedisStore) UserID(ctx context.Context, sessionID string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("redis client is nil")
	}

	val, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session from redis: %w", err)
	}

	return val, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}

	return nil
}

func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}
