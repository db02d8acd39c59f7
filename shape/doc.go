// Package shape defines the cache-relevant parameter model for shape resources
// and derives deterministic fingerprints from it.
//
// Parameters are assembled with a Builder and frozen into an immutable Params
// value by Builder.Build. Fingerprint and EffectFingerprint turn a Params into
// the string key used by the drawable cache.
//
// # Fingerprints
//
// A fingerprint covers exactly five fields: kind, fill, stroke width, stroke
// color and corner radii. Width, height and overlay settings are not part of
// Fingerprint. EffectFingerprint additionally covers the overlay flag and the
// overlay color for callers that cache overlay composites separately.
//
// A radii sequence whose entries all lie within 0.01 of the first entry
// fingerprints like a uniform radius of that first value.
package shape
