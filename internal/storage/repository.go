// ABOUTME: Backend interface for snapshot storage.
// ABOUTME: Defines the keyed get/put/delete contract every storage engine implements.
package storage

import "errors"

// ErrNotFound is returned by a Backend when the key holds no value.
var ErrNotFound = errors.New("not found")

// Backend stores opaque values under string keys.
// This interface allows swapping implementations (e.g., for testing).
type Backend interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Put replaces the value stored under key.
	Put(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Lifecycle
	Close() error
}
