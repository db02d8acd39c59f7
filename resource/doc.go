// Package resource resolves named shape resources: colors, dimensions and
// radii supplied by configuration.
//
// It supports:
//   - Environment expansion that fails on unset variables
//   - Pluggable value providers (see Provider and Registry)
//   - Resolving resource references in configuration values (see Resolver)
//
// References use the prefix "resref:", followed by the provider name and the
// resource name:
//
//	resref:theme:primary
//	resref:env:ACCENT
//
// Values that are not references are used literally after expansion, so
// "#FF2196F3", "${ACCENT}" and "resref:theme:primary" are all valid colors.
package resource
