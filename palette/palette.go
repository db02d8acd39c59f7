// Package palette derives interaction-state colors from a base color.
package palette

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/jonwraymond/tinyshape/shape"
)

// PressedShift is the lightness shift used for derived pressed colors.
const PressedShift = 0.1

// Deriver computes color variants.
//
// Contract:
// - Purity: results depend only on the arguments.
// - Alpha: Lighten and Darken preserve the input alpha.
type Deriver interface {
	// Lighten raises lightness by fraction (0..1).
	Lighten(c shape.Color, fraction float64) shape.Color

	// Darken lowers lightness by fraction (0..1).
	Darken(c shape.Color, fraction float64) shape.Color

	// BuildStateColorMap maps pressed and focused to their colors, the
	// default state to def, disabled to other, and everything else to def.
	BuildStateColorMap(def, pressed, focused, other shape.Color) shape.StateColorMap
}

// HSL derives colors by shifting lightness in HSL space.
type HSL struct{}

// Lighten implements Deriver.
func (HSL) Lighten(c shape.Color, fraction float64) shape.Color {
	return shiftLightness(c, math.Abs(fraction))
}

// Darken implements Deriver.
func (HSL) Darken(c shape.Color, fraction float64) shape.Color {
	return shiftLightness(c, -math.Abs(fraction))
}

// BuildStateColorMap implements Deriver.
func (HSL) BuildStateColorMap(def, pressed, focused, other shape.Color) shape.StateColorMap {
	return shape.NewStateColorMap(def,
		shape.StateColor{State: shape.StateDefault, Color: def},
		shape.StateColor{State: shape.StatePressed, Color: pressed},
		shape.StateColor{State: shape.StateFocused, Color: focused},
		shape.StateColor{State: shape.StateDisabled, Color: other},
	)
}

// Pressed returns the derived pressed color for base: lighter by shift in
// dark mode, darker otherwise.
func Pressed(d Deriver, base shape.Color, dark bool, shift float64) shape.Color {
	if dark {
		return d.Lighten(base, shift)
	}
	return d.Darken(base, shift)
}

func shiftLightness(c shape.Color, delta float64) shape.Color {
	in := colorful.Color{
		R: float64(c.R()) / 255,
		G: float64(c.G()) / 255,
		B: float64(c.B()) / 255,
	}
	h, s, l := in.Hsl()
	l = math.Max(0, math.Min(1, l+delta))
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return shape.ARGB(c.A(), r, g, b)
}

// Ensure HSL implements Deriver
var _ Deriver = HSL{}
