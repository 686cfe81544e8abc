// Package cache stores computed layouts and rendered artifacts.
//
// All backends implement [Cache], a byte-oriented key/value store with
// per-entry TTLs:
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP service
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer], which hashes the inputs that determine an entry
// so that any change to items, grid settings, width or render options
// produces a different key.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached entries. Layouts are pure functions of their key,
// so entries only expire to bound storage.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value store for serialized pipeline results.
type Cache interface {
	// Get returns the stored value and true, or false on a miss. Expired and
	// unreadable entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}
