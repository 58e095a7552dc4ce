// Package cache memoizes materialized search results behind a
// redis/go-redis/v9-backed store, since repeated queries over an
// immutable corpus (spec.md §5 — no transactions, no incremental
// updates) are pure: the same (cql, left, right, offset, limit) always
// produces the same page. Adapted from the teacher's internal/web/cache
// package, scoped to this one cache shape.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache stores and retrieves serialized search result pages.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ErrMiss is returned by Get when key is absent.
type ErrMiss struct{ Key string }

func (e ErrMiss) Error() string { return "cache miss: " + e.Key }

// IsMiss reports whether err is an ErrMiss.
func IsMiss(err error) bool {
	_, ok := err.(ErrMiss)
	return ok
}

// Key derives a deterministic cache key for a search request, the way
// the teacher's KeyGenerator hashes method/path/query into a fixed-width
// key.
func Key(cql string, left, right, offset, limit int) string {
	raw := fmt.Sprintf("%s|%d|%d|%d|%d", cql, left, right, offset, limit)
	sum := sha256.Sum256([]byte(raw))
	return "search:" + hex.EncodeToString(sum[:16])
}
