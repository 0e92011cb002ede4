package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/xformgraph/pkg/observability"
)

// DefaultRedisPrefix namespaces every key written by [RedisStore].
const DefaultRedisPrefix = "xformgraph:doc:"

// RedisStore implements [Store] on Redis. Documents live under
// prefix+key; a sorted set at prefix+"index" records every key with its
// expiry time as the score so List can prune lazily.
type RedisStore struct {
	client     *redis.Client
	prefix     string
	attempts   int
	retryDelay time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithRetry sets how often a command is retried after a network error
// and the first backoff delay.
func WithRetry(attempts int, delay time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.attempts = max(attempts, 1)
		s.retryDelay = delay
	}
}

// NewRedisStore connects to the Redis server at addr.
func NewRedisStore(addr, password string, db int, opts ...RedisOption) *RedisStore {
	return NewRedisStoreFromClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client:     client,
		prefix:     DefaultRedisPrefix,
		attempts:   3,
		retryDelay: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// neverExpires is the index score of entries without a TTL (2100-01-01).
const neverExpires = 4102444800

func (s *RedisStore) key(k string) string { return s.prefix + k }

func (s *RedisStore) indexKey() string { return s.prefix + "index" }

// do runs fn with retries on network errors.
func (s *RedisStore) do(ctx context.Context, fn func() error) error {
	return RetryWithBackoff(ctx, s.attempts, s.retryDelay, func() error {
		err := fn()
		var netErr net.Error
		if errors.As(err, &netErr) {
			return Retryable(err)
		}
		return err
	})
}

// Get retrieves a document.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	var data []byte
	err := s.do(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.key(key)).Bytes()
		return err
	})
	if errors.Is(err, redis.Nil) {
		observability.Store().OnStoreMiss(ctx, "redis")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	observability.Store().OnStoreHit(ctx, "redis")
	return data, true, nil
}

// Set stores a document and records it in the index.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := checkKey(key); err != nil {
		return err
	}
	score := float64(neverExpires)
	if ttl > 0 {
		score = float64(time.Now().Add(ttl).Unix())
	}
	err := s.do(ctx, func() error {
		pipe := s.client.TxPipeline()
		pipe.Set(ctx, s.key(key), data, ttl)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: score, Member: key})
		_, err := pipe.Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	observability.Store().OnStoreSet(ctx, "redis", len(data))
	return nil
}

// Delete removes a document and its index entry.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return s.do(ctx, func() error {
		pipe := s.client.TxPipeline()
		pipe.Del(ctx, s.key(key))
		pipe.ZRem(ctx, s.indexKey(), key)
		_, err := pipe.Exec(ctx)
		return err
	})
}

// List prunes expired index entries and returns the remaining keys.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	now := fmt.Sprintf("%d", time.Now().Unix())
	var keys []string
	err := s.do(ctx, func() error {
		if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", "("+now).Err(); err != nil {
			return err
		}
		var err error
		keys, err = s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("redis list: %w", err)
	}
	slices.Sort(keys)
	return keys, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
