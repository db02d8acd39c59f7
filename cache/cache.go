package cache

import "errors"

// Sentinel errors for cache operations.
var (
	ErrNilCache  = errors.New("cache: cache is nil")
	ErrNilBuild  = errors.New("cache: build function is nil")
	ErrBadResult = errors.New("cache: build returned an unexpected value")
)

// Cache stores realized values under string keys.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ordering: Get and Add count as a use of the key; Peek does not.
// - Capacity: Add evicts as needed so Len never exceeds Capacity.
type Cache[V any] interface {
	// Get returns the value for key and marks it most recently used.
	Get(key string) (V, bool)

	// Peek returns the value for key without changing its position.
	Peek(key string) (V, bool)

	// Add stores value under key, marks it most recently used, and reports
	// whether another entry was evicted to make room.
	Add(key string, value V) (evicted bool)

	// Remove deletes key. It reports whether the key was present.
	Remove(key string) bool

	// Len returns the number of stored entries.
	Len() int

	// Capacity returns the maximum number of entries.
	Capacity() int

	// Purge removes every entry without running eviction hooks.
	Purge()
}
