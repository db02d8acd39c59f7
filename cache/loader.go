package cache

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Outcome describes how Loader.Load satisfied a request.
type Outcome int

const (
	// OutcomeHit means the value was already cached.
	OutcomeHit Outcome = iota
	// OutcomeMiss means this call ran the build function.
	OutcomeMiss
	// OutcomeShared means this call waited for a concurrent build of the same key.
	OutcomeShared
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	case OutcomeShared:
		return "shared"
	default:
		return "unknown"
	}
}

// BuildFunc constructs the value for a missing key.
type BuildFunc[V any] func() (V, error)

// Loader performs get-or-insert against a Cache with per-key compute-once
// coordination. Concurrent misses on the same key run one BuildFunc; the other
// callers wait and receive the same value or error.
//
// Errors are NOT cached.
type Loader[V any] struct {
	cache Cache[V]
	group singleflight.Group

	hits     atomic.Uint64
	misses   atomic.Uint64
	shared   atomic.Uint64
	failures atomic.Uint64
}

// NewLoader creates a loader over c.
func NewLoader[V any](c Cache[V]) *Loader[V] {
	return &Loader[V]{cache: c}
}

// Cache returns the underlying cache.
func (l *Loader[V]) Cache() Cache[V] {
	return l.cache
}

// Load returns the cached value for key, building and inserting it on a miss.
func (l *Loader[V]) Load(key string, build BuildFunc[V]) (V, Outcome, error) {
	var zero V
	if l == nil || l.cache == nil {
		return zero, OutcomeMiss, ErrNilCache
	}
	if build == nil {
		return zero, OutcomeMiss, ErrNilBuild
	}

	if v, ok := l.cache.Get(key); ok {
		l.hits.Add(1)
		return v, OutcomeHit, nil
	}

	// ran and built are only written by the closure, which singleflight runs
	// on this goroutine when this call is the leader.
	var ran, built bool
	res, err, _ := l.group.Do(key, func() (any, error) {
		ran = true
		// A previous leader may have inserted between our Get and Do.
		if v, ok := l.cache.Get(key); ok {
			return v, nil
		}
		v, err := build()
		if err != nil {
			return nil, err
		}
		built = true
		l.cache.Add(key, v)
		return v, nil
	})

	outcome := OutcomeShared
	switch {
	case ran && built:
		outcome = OutcomeMiss
	case ran:
		outcome = OutcomeHit
	}

	if err != nil {
		if outcome != OutcomeShared {
			l.failures.Add(1)
		}
		return zero, outcome, err
	}

	v, ok := res.(V)
	if !ok {
		return zero, outcome, ErrBadResult
	}

	switch outcome {
	case OutcomeHit:
		l.hits.Add(1)
	case OutcomeMiss:
		l.misses.Add(1)
	default:
		l.shared.Add(1)
	}
	return v, outcome, nil
}

// Stats returns a snapshot of loader and cache counters.
func (l *Loader[V]) Stats() Stats {
	s := Stats{
		Hits:     l.hits.Load(),
		Misses:   l.misses.Load(),
		Shared:   l.shared.Load(),
		Failures: l.failures.Load(),
	}
	if l.cache != nil {
		s.Size = l.cache.Len()
		s.Capacity = l.cache.Capacity()
		if ec, ok := l.cache.(interface{ Evictions() uint64 }); ok {
			s.Evictions = ec.Evictions()
		}
	}
	return s
}
