package store

import (
	"context"
	"time"

	"github.com/matzehuels/xformgraph/pkg/observability"
)

// NullStore is a no-op store that never keeps anything.
// Useful for testing or when the library is disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Get always reports a miss.
func (s *NullStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	observability.Store().OnStoreMiss(ctx, "null")
	return nil, false, nil
}

// Set validates the key and does nothing.
func (s *NullStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return checkKey(key)
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, key string) error {
	return checkKey(key)
}

// List always returns no keys.
func (s *NullStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

var _ Store = (*NullStore)(nil)
