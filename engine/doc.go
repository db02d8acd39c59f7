// Package engine turns shape parameters into rendered resources.
//
// Construction has three outcomes:
//
//   - plain: the shape itself, when no overlay is requested;
//   - overlay: the shape composed under an interaction overlay limited to the
//     shape's footprint;
//   - degraded: the plain shape, when an overlay is requested on a platform
//     that cannot draw one.
//
// When an overlay is requested without a state color map, the engine
// synthesizes one from the overlay color or, failing that, from a pressed
// color derived from the solid fill. In Strict mode an overlay whose colors
// cannot be resolved at all is a *ConfigurationError.
//
// The engine never caches; see package drawable.
package engine
