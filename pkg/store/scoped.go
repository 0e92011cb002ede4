package store

import (
	"context"
	"strings"
	"time"
)

// ScopedStore prefixes every key of an inner store, giving separate
// libraries a shared backend without collisions.
//
// Example usage:
//
//	team := store.Scoped(base, "team-a.")
//	team.Set(ctx, "blur", doc, 0) // stored as "team-a.blur"
type ScopedStore struct {
	inner  Store
	prefix string
}

// Scoped wraps inner with a key prefix. List on the result only returns
// keys under the prefix, with the prefix removed.
func Scoped(inner Store, prefix string) *ScopedStore {
	if inner == nil {
		inner = NewNullStore()
	}
	return &ScopedStore{inner: inner, prefix: prefix}
}

func (s *ScopedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *ScopedStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *ScopedStore) List(ctx context.Context) ([]string, error) {
	all, err := s.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, k := range all {
		if rest, ok := strings.CutPrefix(k, s.prefix); ok {
			keys = append(keys, rest)
		}
	}
	return keys, nil
}

// Close closes the inner store.
func (s *ScopedStore) Close() error { return s.inner.Close() }

var _ Store = (*ScopedStore)(nil)
