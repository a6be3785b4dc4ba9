// Package cache holds the response stores behind the content client's
// revalidation directives.
//
// A Store maps a request URL to the raw body of a successful response and the
// time it was stored. Freshness is decided by the caller from the entry's age,
// so the same Store serves every revalidation window. Two implementations are
// provided:
//
//   - Memory: an in-process LRU, suitable for a single CLI run or server
//   - Redis: a shared store for several processes rendering the same site
package cache

import (
	"context"
	"time"
)

// Entry is a cached response body.
type Entry struct {
	Body     []byte    `json:"body"`
	StoredAt time.Time `json:"stored_at"`
}

// Fresh reports whether the entry may still be served at now. A negative maxAge
// means the entry never expires.
func (e Entry) Fresh(maxAge time.Duration, now time.Time) bool {
	if maxAge < 0 {
		return true
	}
	return now.Sub(e.StoredAt) < maxAge
}

// Store persists cached responses.
type Store interface {
	// Get returns the entry for key, if present.
	Get(ctx context.Context, key string) (Entry, bool, error)

	// Set stores an entry. A ttl <= 0 keeps it until evicted.
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error

	// Delete removes key from the store.
	Delete(ctx context.Context, key string) error
}
