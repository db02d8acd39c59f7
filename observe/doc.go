// Package observe provides observability primitives for shape materialization.
//
// It is a pure instrumentation library: no construction, no caching, no I/O
// beyond exporter setup. The drawable service wires a Middleware around every
// materialization and reports cache occupancy through ObserveCache.
//
// Spans are named shape.materialize.<kind> and carry the fingerprint, the
// overlay flag, the bypass flag and the cache outcome. Metrics are prefixed
// with tinyshape.
package observe
