package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "gameforge:refresh:"

// ErrSessionNotFound is returned when a refresh session is absent or expired.
var ErrSessionNotFound = errors.New("refresh session not found")

// SessionStore keeps refresh sessions keyed by a digest of the token id.
// The stored value is the owning user id.
type SessionStore interface {
	Save(ctx context.Context, key string, userID string, ttl time.Duration) error
	Lookup(ctx context.Context, key string) (string, error)
	Revoke(ctx context.Context, key string) error
}

type redisSessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb}
}

func (s *redisSessionStore) Save(ctx context.Context, key string, userID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, refreshKeyPrefix+key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Lookup(ctx context.Context, key string) (string, error) {
	userID, err := s.rdb.Get(ctx, refreshKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup refresh session: %w", err)
	}
	return userID, nil
}

func (s *redisSessionStore) Revoke(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, refreshKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("revoke refresh session: %w", err)
	}
	return nil
}
