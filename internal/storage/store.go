// Package storage provides the durable key-value text store behind the
// favorites list. Each key holds one value that is always replaced whole.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a scoped key-value text store.
type Store interface {
	// Get returns the value under key. ok is false when the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set replaces the value under key.
	Set(ctx context.Context, key, value string) error
	// Close releases any resources held by the store.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the store for backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileStore(dir)
	case BackendSQLite:
		return OpenSQLite(dir)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
