// Package cache provides the bounded storage behind the drawable service.
//
// It provides a Cache interface with a strict least-recently-used
// implementation (LRU), a capacity Policy, deterministic Keyer adapters, and a
// Loader that turns check-construct-insert into a single get-or-insert step:
// concurrent misses on one key share one construction.
package cache
