// Package store keeps a library of graph documents under string keys.
//
// Three backends are provided: [FileStore] for the CLI, [RedisStore] for
// shared deployments and [NullStore] when persistence is disabled. [Scoped]
// namespaces any of them. Keys are validated with
// [errors.ValidateStoreKey] before they reach a backend.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/xformgraph/pkg/errors"
)

// Store holds raw document bytes by key.
type Store interface {
	// Get returns the stored bytes. ok is false when the key is absent or
	// expired; that is not an error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns the live keys in sorted order.
	List(ctx context.Context) ([]string, error)
	Close() error
}

func checkKey(key string) error {
	return errors.ValidateStoreKey(key)
}
