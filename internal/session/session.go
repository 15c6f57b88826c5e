// Package session keeps the server-side state of issued login tokens. JWTs
// are stateless, so a logout is recorded as a revoked token id in Redis until
// the token would have expired anyway.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type TokenStore struct {
	rdb     *redis.Client
	timeout time.Duration
}

func NewTokenStore(rdb *redis.Client, timeout time.Duration) *TokenStore {
	return &TokenStore{rdb: rdb, timeout: timeout}
}

func revokedKey(jti string) string {
	return fmt.Sprintf("revoked_token_%s", jti)
}

// Revoke marks jti as logged out for ttl. A token that has already expired
// needs no entry.
func (s *TokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return errors.New("token has no id")
	}
	if ttl <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.rdb.Set(ctx, revokedKey(jti), 1, ttl).Err()
}

func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.rdb.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
