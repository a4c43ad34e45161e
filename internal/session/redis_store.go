package session

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// RedisStore shares one credential per profile between machines that point
// at the same redis.
type RedisStore struct {
	client  *redisv9.Client
	profile string
}

func NewRedisStore(client *redisv9.Client, profile string) *RedisStore {
	if profile == "" {
		profile = "default"
	}
	return &RedisStore{client: client, profile: profile}
}

func (s *RedisStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key()).Result()
	if err == redisv9.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get credential failed: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Save(ctx context.Context, token string, maxAge time.Duration) error {
	if err := s.client.Set(ctx, s.key(), token, maxAge).Err(); err != nil {
		return fmt.Errorf("redis set credential failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("redis delete credential failed: %w", err)
	}
	return nil
}

func (s *RedisStore) key() string {
	return fmt.Sprintf("varboard:session:%s", s.profile)
}
