package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachable returns a client whose every command fails without a server.
func unreachable(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRevokedKey(t *testing.T) {
	assert.Equal(t, "revoked_token_abc", revokedKey("abc"))
}

func TestRevokeWithoutID(t *testing.T) {
	store := NewTokenStore(unreachable(t), time.Second)
	require.Error(t, store.Revoke(context.Background(), "", time.Hour))
}

func TestRevokeExpiredTokenSkipsRedis(t *testing.T) {
	store := NewTokenStore(unreachable(t), time.Second)
	require.NoError(t, store.Revoke(context.Background(), "abc", 0))
	require.NoError(t, store.Revoke(context.Background(), "abc", -time.Minute))
}

func TestRedisUnavailable(t *testing.T) {
	store := NewTokenStore(unreachable(t), time.Second)

	require.Error(t, store.Revoke(context.Background(), "abc", time.Hour))

	revoked, err := store.IsRevoked(context.Background(), "abc")
	require.Error(t, err)
	assert.False(t, revoked)
}
