package render

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/jonwraymond/tinyshape/shape"
)

// DefaultMaxSize is the largest width or height Raster draws by default.
const DefaultMaxSize = 4096

// Ring proportions relative to the smaller side of the bounds.
const (
	ringInnerRatio     = 3.0
	ringThicknessRatio = 9.0
)

// Raster is a software Renderer. Coverage is computed once per shape at render
// time; colors are applied when an image is requested.
//
// The zero value is ready to use.
type Raster struct {
	// MaxSize bounds width and height. Zero means DefaultMaxSize.
	MaxSize int
}

// NewRaster creates a software renderer with default limits.
func NewRaster() *Raster {
	return &Raster{MaxSize: DefaultMaxSize}
}

// RenderShape implements Renderer.
func (r *Raster) RenderShape(spec ShapeSpec) (Resource, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, spec.Width, spec.Height)
	}
	limit := r.MaxSize
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	if spec.Width > limit || spec.Height > limit {
		return nil, fmt.Errorf("%w: %dx%d > %d", ErrSizeTooLarge, spec.Width, spec.Height, limit)
	}
	if !spec.Kind.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKind, spec.Kind)
	}

	fill, stroke := outlines(spec)
	bounds := image.Rect(0, 0, spec.Width, spec.Height)
	return &Shape{
		spec:   cloneSpec(spec),
		bounds: bounds,
		fill:   rasterize(bounds, fill),
		stroke: rasterize(bounds, stroke),
	}, nil
}

// RenderOverlay implements Renderer.
func (r *Raster) RenderOverlay(states shape.StateColorMap, content, mask Resource) (Resource, error) {
	if content == nil || mask == nil {
		return nil, ErrNilResource
	}
	return &Overlay{
		states:  states,
		content: content,
		mask:    mask,
		bounds:  content.Bounds(),
	}, nil
}

// Shape is a rasterized shape. It is immutable.
type Shape struct {
	spec   ShapeSpec
	bounds image.Rectangle
	fill   *image.Alpha // nil when nothing is filled
	stroke *image.Alpha // nil without a stroke
}

// Spec returns a copy of the spec the shape was drawn from.
func (s *Shape) Spec() ShapeSpec {
	return cloneSpec(s.spec)
}

// Bounds implements Resource.
func (s *Shape) Bounds() image.Rectangle {
	return s.bounds
}

// Image implements Resource.
func (s *Shape) Image(state shape.State) image.Image {
	out := image.NewRGBA(s.bounds)
	if s.fill != nil {
		paint(out, s.fill, s.spec.Fill.ColorFor(state))
	}
	if s.stroke != nil && s.spec.Stroke != nil {
		paint(out, s.stroke, s.spec.Stroke.Color)
	}
	return out
}

// Overlay is an interaction overlay composed over a content resource.
type Overlay struct {
	states  shape.StateColorMap
	content Resource
	mask    Resource
	bounds  image.Rectangle
}

// States returns the overlay colors.
func (o *Overlay) States() shape.StateColorMap { return o.states }

// Content returns the resource drawn under the overlay.
func (o *Overlay) Content() Resource { return o.content }

// Mask returns the resource whose coverage limits the overlay.
func (o *Overlay) Mask() Resource { return o.mask }

// Bounds implements Resource.
func (o *Overlay) Bounds() image.Rectangle {
	return o.bounds
}

// Image implements Resource. The default state shows the content alone; other
// states paint the state color through the mask on top of it.
func (o *Overlay) Image(state shape.State) image.Image {
	out := image.NewRGBA(o.bounds)
	draw.Draw(out, o.bounds, o.content.Image(state), o.content.Bounds().Min, draw.Src)
	if state == shape.StateDefault {
		return out
	}
	mask := o.mask.Image(shape.StateDefault)
	draw.DrawMask(out, o.bounds, image.NewUniform(o.states.ColorFor(state)), image.Point{}, mask, mask.Bounds().Min, draw.Over)
	return out
}

func paint(dst draw.Image, coverage *image.Alpha, c shape.Color) {
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, coverage, image.Point{}, draw.Over)
}

type contour struct {
	poly polygon
	hole bool
}

// outlines returns the fill and stroke contours for spec.
func outlines(spec ShapeSpec) (fill, stroke []contour) {
	w, h := float64(spec.Width), float64(spec.Height)
	sw := 0.0
	if spec.Stroke != nil && spec.Stroke.Width > 0 {
		sw = float64(spec.Stroke.Width)
	}
	half := sw / 2

	switch spec.Kind {
	case shape.Rectangle:
		c := cornersFrom(spec.Radii, spec.Radius)
		fill = []contour{{poly: roundRect(half, half, w-half, h-half, c)}}
		if sw > 0 {
			stroke = []contour{
				{poly: roundRect(0, 0, w, h, c.grow(half))},
				{poly: roundRect(sw, sw, w-sw, h-sw, c.grow(-half)), hole: true},
			}
		}

	case shape.Oval:
		fill = []contour{{poly: ellipse(half, half, w-half, h-half)}}
		if sw > 0 {
			stroke = []contour{
				{poly: ellipse(0, 0, w, h)},
				{poly: ellipse(sw, sw, w-sw, h-sw), hole: true},
			}
		}

	case shape.Line:
		// A line is only its stroke, centered vertically.
		if sw > 0 {
			stroke = []contour{{poly: roundRect(0, h/2-half, w, h/2+half, corners{})}}
		}

	case shape.Ring:
		cx, cy := w/2, h/2
		side := math.Min(w, h)
		inner := side / ringInnerRatio
		outer := inner + side/ringThicknessRatio
		fill = []contour{
			{poly: circle(cx, cy, outer)},
			{poly: circle(cx, cy, inner), hole: true},
		}
		if sw > 0 {
			stroke = []contour{
				{poly: circle(cx, cy, outer+half)},
				{poly: circle(cx, cy, outer-half), hole: true},
				{poly: circle(cx, cy, inner+half)},
				{poly: circle(cx, cy, inner-half), hole: true},
			}
		}
	}
	return fill, stroke
}

func rasterize(bounds image.Rectangle, contours []contour) *image.Alpha {
	if len(contours) == 0 {
		return nil
	}
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	for _, c := range contours {
		trace(z, c.poly, c.hole)
	}
	dst := image.NewAlpha(bounds)
	z.Draw(dst, bounds, image.Opaque, image.Point{})
	return dst
}

func cloneSpec(spec ShapeSpec) ShapeSpec {
	if spec.Radii != nil {
		spec.Radii = append([]float64(nil), spec.Radii...)
	}
	if spec.Stroke != nil {
		st := *spec.Stroke
		spec.Stroke = &st
	}
	if spec.Fill.States != nil {
		m := *spec.Fill.States
		spec.Fill.States = &m
	}
	return spec
}

// Ensure Raster implements Renderer
var _ Renderer = (*Raster)(nil)
