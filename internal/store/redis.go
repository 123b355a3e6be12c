package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/explainit/backend/internal/game"
)

// RedisStore persists rooms as JSON blobs under "room:"+code. Entries
// share the fallback store's retention window so abandoned rooms expire
// server-side too.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing client. ttl <= 0 stores without expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, code string) (*game.Room, error) {
	data, err := s.client.Get(ctx, keyPrefix+code).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var room game.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("redis get: decode room %s: %w", code, err)
	}
	return &room, nil
}

func (s *RedisStore) Set(ctx context.Context, code string, room *game.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("redis set: encode room %s: %w", code, err)
	}
	if err := s.client.Set(ctx, keyPrefix+code, data, max(s.ttl, 0)).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, code string) error {
	if err := s.client.Del(ctx, keyPrefix+code).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}
