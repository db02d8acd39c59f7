// Package render defines the rendering primitive used to realize shapes and a
// software implementation built on golang.org/x/image/vector.
//
// Resources are immutable once returned: Image allocates a fresh picture on
// every call, so a cached resource can be shared by any number of callers.
package render

import (
	"errors"
	"image"

	"github.com/jonwraymond/tinyshape/shape"
)

// Sentinel errors returned by renderers.
var (
	ErrInvalidSize  = errors.New("render: width and height must be positive")
	ErrSizeTooLarge = errors.New("render: size exceeds renderer limit")
	ErrNilResource  = errors.New("render: resource is nil")
	ErrInvalidKind  = errors.New("render: unsupported shape kind")
)

// Fill is the paint inside a shape. States, when set, takes precedence.
type Fill struct {
	Solid  shape.Color
	States *shape.StateColorMap
}

// SolidFill returns a single-color fill.
func SolidFill(c shape.Color) Fill {
	return Fill{Solid: c}
}

// StateFill returns a state-dependent fill.
func StateFill(m shape.StateColorMap) Fill {
	return Fill{States: &m}
}

// ColorFor returns the fill color in state s.
func (f Fill) ColorFor(s shape.State) shape.Color {
	if f.States != nil {
		return f.States.ColorFor(s)
	}
	return f.Solid
}

// Stroke is an outline of Width pixels.
type Stroke struct {
	Width int
	Color shape.Color
}

// ShapeSpec is everything the rendering primitive needs to draw one shape.
type ShapeSpec struct {
	Kind   shape.Kind
	Width  int
	Height int
	Fill   Fill

	// Stroke is nil when no outline is drawn.
	Stroke *Stroke

	// Radii holds 8 corner radii and takes precedence over Radius.
	Radii  []float64
	Radius float64
}

// Resource is a realized, immutable drawable.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ownership: Image returns a new image the caller may modify.
type Resource interface {
	// Bounds returns the resource bounds, anchored at the origin.
	Bounds() image.Rectangle

	// Image draws the resource as it appears in state s.
	Image(s shape.State) image.Image
}

// Renderer realizes shapes and overlay composites.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Purity: the same arguments produce equivalent resources.
// - Errors: invalid geometry is reported, never drawn partially.
type Renderer interface {
	// RenderShape draws a single shape.
	RenderShape(spec ShapeSpec) (Resource, error)

	// RenderOverlay composes an interaction overlay over content. The overlay
	// color for a state comes from states; mask limits where it is painted.
	RenderOverlay(states shape.StateColorMap, content, mask Resource) (Resource, error)
}
