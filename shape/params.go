package shape

import (
	"fmt"
	"math"
)

// RadiiLen is the number of values in a corner radii sequence: an x and a y
// radius for the top-left, top-right, bottom-right and bottom-left corners.
const RadiiLen = 8

// Params is a frozen shape parameter set. Build one with a Builder.
//
// Params is immutable: accessors return copies of any slice data, so a value
// can be shared freely once built.
type Params struct {
	kind         Kind
	solid        Color
	states       *StateColorMap
	strokeWidth  int
	strokeColor  Color
	radius       float64
	radii        []float64
	width        int
	height       int
	overlay      bool
	overlayColor Color
	hasOverlayC  bool
}

// Kind returns the shape kind.
func (p Params) Kind() Kind { return p.kind }

// Solid returns the solid fill color. It is Transparent when unset.
func (p Params) Solid() Color { return p.solid }

// States returns the state-dependent fill, if one was supplied.
func (p Params) States() (StateColorMap, bool) {
	if p.states == nil {
		return StateColorMap{}, false
	}
	return *p.states, true
}

// StrokeWidth returns the stroke width in pixels. Zero means no stroke.
func (p Params) StrokeWidth() int { return p.strokeWidth }

// StrokeColor returns the stroke color.
func (p Params) StrokeColor() Color { return p.strokeColor }

// Radius returns the uniform corner radius. It is zero when a radii sequence
// was supplied instead.
func (p Params) Radius() float64 { return p.radius }

// Radii returns a copy of the corner radii sequence, or nil.
func (p Params) Radii() []float64 {
	if p.radii == nil {
		return nil
	}
	out := make([]float64, len(p.radii))
	copy(out, p.radii)
	return out
}

// HasRadii reports whether a corner radii sequence was supplied.
func (p Params) HasRadii() bool { return len(p.radii) > 0 }

// Width returns the requested width in pixels. Non-positive means default.
func (p Params) Width() int { return p.width }

// Height returns the requested height in pixels. Non-positive means default.
func (p Params) Height() int { return p.height }

// Overlay reports whether an interaction overlay was requested.
func (p Params) Overlay() bool { return p.overlay }

// OverlayColor returns the pressed-state override color, if one was supplied.
func (p Params) OverlayColor() (Color, bool) { return p.overlayColor, p.hasOverlayC }

// WithoutOverlay returns a copy of p with the overlay request and the overlay
// color cleared.
func (p Params) WithoutOverlay() Params {
	p.overlay = false
	p.overlayColor = 0
	p.hasOverlayC = false
	return p
}

// Builder assembles a Params value. Each setter returns the builder so calls
// can be chained. A Builder is not safe for concurrent use.
//
// The zero Builder is ready to use and describes a transparent rectangle.
type Builder struct {
	p Params
}

// NewBuilder returns a Builder for a transparent rectangle.
func NewBuilder() *Builder {
	return &Builder{}
}

// Kind sets the shape kind.
func (b *Builder) Kind(k Kind) *Builder {
	b.p.kind = k
	return b
}

// Solid sets the solid fill color.
func (b *Builder) Solid(c Color) *Builder {
	b.p.solid = c
	return b
}

// States sets a state-dependent fill.
func (b *Builder) States(m StateColorMap) *Builder {
	b.p.states = &m
	return b
}

// StrokeWidth sets the stroke width in pixels.
func (b *Builder) StrokeWidth(w int) *Builder {
	b.p.strokeWidth = w
	return b
}

// StrokeColor sets the stroke color.
func (b *Builder) StrokeColor(c Color) *Builder {
	b.p.strokeColor = c
	return b
}

// Radius sets a uniform corner radius and clears any radii sequence.
func (b *Builder) Radius(r float64) *Builder {
	b.p.radius = r
	b.p.radii = nil
	return b
}

// Radii sets the 8-value corner radii sequence and clears the uniform radius.
// Passing no values clears the sequence.
func (b *Builder) Radii(r ...float64) *Builder {
	if len(r) == 0 {
		b.p.radii = nil
		return b
	}
	b.p.radii = append([]float64(nil), r...)
	b.p.radius = 0
	return b
}

// Width sets the width in pixels.
func (b *Builder) Width(w int) *Builder {
	b.p.width = w
	return b
}

// Height sets the height in pixels.
func (b *Builder) Height(h int) *Builder {
	b.p.height = h
	return b
}

// Size sets width and height in pixels.
func (b *Builder) Size(w, h int) *Builder {
	b.p.width = w
	b.p.height = h
	return b
}

// Overlay requests or clears the interaction overlay.
func (b *Builder) Overlay(on bool) *Builder {
	b.p.overlay = on
	return b
}

// OverlayColor sets the pressed-state override color and requests the overlay.
func (b *Builder) OverlayColor(c Color) *Builder {
	b.p.overlay = true
	b.p.overlayColor = c
	b.p.hasOverlayC = true
	return b
}

// Build validates the builder state and returns a frozen copy. The builder may
// be modified afterwards without affecting the returned Params.
func (b *Builder) Build() (Params, error) {
	p := b.p
	if !p.kind.Valid() {
		return Params{}, ErrInvalidKind
	}
	if p.strokeWidth < 0 {
		return Params{}, ErrNegativeStroke
	}
	if err := checkRadius(p.radius); err != nil {
		return Params{}, err
	}
	if p.radii != nil {
		if len(p.radii) != RadiiLen {
			return Params{}, ErrInvalidRadii
		}
		for i, r := range p.radii {
			if err := checkRadius(r); err != nil {
				return Params{}, fmt.Errorf("%w: corner value %d", err, i)
			}
		}
		p.radii = append([]float64(nil), p.radii...)
	}
	if p.states != nil {
		m := *p.states
		p.states = &m
	}
	return p, nil
}

func checkRadius(r float64) error {
	switch {
	case math.IsNaN(r) || math.IsInf(r, 0):
		return ErrNonFiniteRadius
	case r < 0:
		return ErrNegativeRadius
	}
	return nil
}

// MustBuild is like Build but panics on invalid input. It is intended for
// package-level shape definitions.
func (b *Builder) MustBuild() Params {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}
