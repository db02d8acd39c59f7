// Package drawable is the shape cache service: it materializes shape
// parameters into rendered resources and keeps the most recently used ones in
// a bounded LRU keyed by shape fingerprint.
//
// A Service is safe for concurrent use. Concurrent requests for the same
// uncached shape construct it once; the other callers receive the same
// instance. Failed constructions are never cached.
//
// Overlays (interaction feedback layers) are handled according to the
// service's OverlayPolicy. Under OverlayBypass, the default, overlay
// composites are never cached but the plain shape underneath them is. Under
// OverlayKeyed, overlay composites are cached under a key that includes the
// overlay settings.
//
// Most programs create a Service with New. Configure and Default manage a
// process-wide instance for code that cannot thread one through.
package drawable
