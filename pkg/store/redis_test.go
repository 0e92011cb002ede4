package store

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client, WithRetry(1, time.Millisecond))
	t.Cleanup(func() { _ = s.Close() })
	return mr, s
}

func TestRedisStore_Contract(t *testing.T) {
	_, s := newMiniRedis(t)
	runContract(t, s)
}

func TestRedisStore_Layout(t *testing.T) {
	mr, s := newMiniRedis(t)
	ctx := t.Context()

	require.NoError(t, s.Set(ctx, "pipeline", []byte("doc"), 0))

	got, err := mr.Get(DefaultRedisPrefix + "pipeline")
	require.NoError(t, err)
	assert.Equal(t, "doc", got)

	members, err := mr.ZMembers(DefaultRedisPrefix + "index")
	require.NoError(t, err)
	assert.Equal(t, []string{"pipeline"}, members)
}

func TestRedisStore_TTLPrunesIndex(t *testing.T) {
	mr, s := newMiniRedis(t)
	ctx := t.Context()

	require.NoError(t, s.Set(ctx, "keep", []byte("a"), 0))
	require.NoError(t, s.Set(ctx, "gone", []byte("b"), time.Second))

	// Expire the value and push its index score into the past.
	mr.FastForward(2 * time.Second)
	mr.ZAdd(DefaultRedisPrefix+"index", 1, "gone")

	_, ok, err := s.Get(ctx, "gone")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, keys)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client, WithPrefix("test:"))
	defer s.Close()

	require.NoError(t, s.Set(t.Context(), "k", []byte("v"), 0))
	assert.True(t, mr.Exists("test:k"))
	assert.False(t, mr.Exists(DefaultRedisPrefix+"k"))
}
