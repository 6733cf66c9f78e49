package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash returns the hex-encoded SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Keyer builds cache keys for normalized entities.
type Keyer interface {
	// EntityKey returns the key for op (e.g. "author_by_id") on backend
	// with the given identifier parts.
	EntityKey(op, backend string, ids ...string) string
}

// DefaultKeyer produces keys of the form "entity:<op>:<backend>:<id>[:<id>...]".
type DefaultKeyer struct{}

// EntityKey implements [Keyer].
func (DefaultKeyer) EntityKey(op, backend string, ids ...string) string {
	parts := make([]string, 0, 3+len(ids))
	parts = append(parts, "entity", op, backend)
	for _, id := range ids {
		parts = append(parts, strings.ToLower(id))
	}
	return strings.Join(parts, ":")
}

// ScopedKeyer prefixes every key, so several deployments can share one
// Redis database without colliding.
type ScopedKeyer struct {
	Prefix string
	Inner  Keyer
}

// NewScopedKeyer wraps the default keyer with prefix. An empty prefix
// returns the default keyer unchanged.
func NewScopedKeyer(prefix string) Keyer {
	if prefix == "" {
		return DefaultKeyer{}
	}
	return ScopedKeyer{Prefix: prefix, Inner: DefaultKeyer{}}
}

// EntityKey implements [Keyer].
func (k ScopedKeyer) EntityKey(op, backend string, ids ...string) string {
	return k.Prefix + ":" + k.Inner.EntityKey(op, backend, ids...)
}
