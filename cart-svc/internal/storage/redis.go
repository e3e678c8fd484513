package storage

import (
	"context"
	"errors"
	"fmt"

	"overcooked-cart/cart-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps every value without expiry; the store is the only copy
// of a client's cart between requests.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (s *RedisStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: redis get %q: %w", domain.ErrStorageFailure, key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Write(ctx context.Context, key string, value []byte) error {
	if err := s.Client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set %q: %w", domain.ErrStorageFailure, key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: redis del %q: %w", domain.ErrStorageFailure, key, err)
	}
	return nil
}
