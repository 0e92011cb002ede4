package store

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/xformgraph/pkg/observability"
)

// FileStore implements a file-based store for CLI usage.
// Entries are stored as JSON files in a directory, with their key and
// expiration alongside the data.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the root directory of the store.
func (s *FileStore) Dir() string { return s.dir }

type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (e *fileEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Get retrieves a document from the store.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	entry, err := s.read(s.path(key))
	if err != nil {
		return nil, false, err
	}
	if entry == nil {
		observability.Store().OnStoreMiss(ctx, "file")
		return nil, false, nil
	}
	observability.Store().OnStoreHit(ctx, "file")
	return entry.Data, true, nil
}

// read loads one entry file. Missing, corrupt and expired entries read as
// nil; the latter two are removed.
func (s *FileStore) read(path string) (*fileEntry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, nil
	}
	return &entry, nil
}

// Set stores a document.
func (s *FileStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := checkKey(key); err != nil {
		return err
	}
	entry := fileEntry{Key: key, Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}
	entryData, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, entryData, 0644); err != nil {
		return err
	}
	observability.Store().OnStoreSet(ctx, "file", len(data))
	return nil
}

// Delete removes a document from the store.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// List walks the store directory and returns the keys of live entries.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		entry, err := s.read(path)
		if err != nil {
			return err
		}
		if entry != nil {
			keys = append(keys, entry.Key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(keys)
	return keys, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// path converts a key to a file path.
// The first two hash characters pick a subdirectory so no single directory
// grows too large.
func (s *FileStore) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

var _ Store = (*FileStore)(nil)
