// Package cache provides the entity cache shared by all normalization services.
//
// Entries are opaque byte slices with a time-to-live. Implementations must be
// safe for concurrent use; two requests racing to populate the same key is
// fine because entries are pure functions of their key (last writer wins).
//
// Available backends:
//   - [MemoryCache]: in-process map, the default for the HTTP server
//   - [FileCache]: one file per key, used by the CLI between invocations
//   - [RedisCache]: shared cache for multi-instance deployments
//   - [NullCache]: disables caching
//
// Services use [Cached] for the cache-aside discipline: look up, compute on
// miss, and store only successful results.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cached entities.
const (
	// TTLEntity applies to authors, resources, members and teams.
	TTLEntity = 10 * time.Minute

	// TTLServer applies to server pings, which change more quickly.
	TTLServer = time.Minute
)

// Cache is a key/value store with per-entry expiration.
type Cache interface {
	// Get returns the data stored under key. hit is false on a miss or an
	// expired entry; err reports backend failures only.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
