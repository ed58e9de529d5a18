// file: service/token_store.go

package service

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ITokenStore is the contract for refresh-token session storage. Keeping it
// behind an interface decouples AuthService from the concrete Redis client
// and keeps the unit tests free of a running Redis.
type ITokenStore interface {
	Save(ctx context.Context, tokenHash string, userID int, ttl time.Duration) error
	Get(ctx context.Context, tokenHash string) (int, error)
	Delete(ctx context.Context, tokenHash string) error
}

const refreshTokenKeyPrefix = "refresh:"

// RedisTokenStore stores refresh tokens in Redis, keyed by token hash with
// the session lifetime as the key TTL. Expiry needs no sweeper: Redis drops
// the key.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Save(ctx context.Context, tokenHash string, userID int, ttl time.Duration) error {
	return s.client.Set(ctx, refreshTokenKeyPrefix+tokenHash, userID, ttl).Err()
}

// Get returns the user id the token belongs to. A missing or expired token
// yields ErrInvalidRefreshToken.
func (s *RedisTokenStore) Get(ctx context.Context, tokenHash string) (int, error) {
	val, err := s.client.Get(ctx, refreshTokenKeyPrefix+tokenHash).Result()
	if err == redis.Nil {
		return 0, ErrInvalidRefreshToken
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

func (s *RedisTokenStore) Delete(ctx context.Context, tokenHash string) error {
	return s.client.Del(ctx, refreshTokenKeyPrefix+tokenHash).Err()
}
