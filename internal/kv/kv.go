// Package kv provides the local key-value storage the task store persists into.
// Values are opaque strings; callers own their encoding.
package kv

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage is a single-user string key-value store
type Storage interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool, error)
	// Set writes value under key, replacing any previous value
	Set(key, value string) error
	// Close releases the underlying resources
	Close() error
}

// Backend names accepted by Open
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Open returns the storage backend selected by name, rooted at path
func Open(backend, path string, debug bool) (Storage, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(path, debug)
	case BackendFile:
		return OpenFile(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend '%s'. Use: sqlite, file, memory", backend)
	}
}

// ensureDir creates the parent directory of path
func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}
