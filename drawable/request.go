package drawable

import (
	"context"

	"github.com/jonwraymond/tinyshape/render"
	"github.com/jonwraymond/tinyshape/shape"
)

// Request assembles shape parameters fluently and materializes them through
// a Service. A Request is not safe for concurrent use; the resources it
// returns are.
type Request struct {
	svc *Service
	b   *shape.Builder
}

// Shape starts a request for a transparent rectangle.
func (s *Service) Shape() *Request {
	return &Request{svc: s, b: shape.NewBuilder()}
}

// Shape starts a request against the process-wide service.
func Shape() *Request {
	return Default().Shape()
}

// Kind sets the shape kind.
func (r *Request) Kind(k shape.Kind) *Request { r.b.Kind(k); return r }

// Rectangle sets the kind to shape.Rectangle.
func (r *Request) Rectangle() *Request { return r.Kind(shape.Rectangle) }

// Oval sets the kind to shape.Oval.
func (r *Request) Oval() *Request { return r.Kind(shape.Oval) }

// Line sets the kind to shape.Line.
func (r *Request) Line() *Request { return r.Kind(shape.Line) }

// Ring sets the kind to shape.Ring.
func (r *Request) Ring() *Request { return r.Kind(shape.Ring) }

// Solid sets the solid fill color.
func (r *Request) Solid(c shape.Color) *Request { r.b.Solid(c); return r }

// States sets a state-dependent fill.
func (r *Request) States(m shape.StateColorMap) *Request { r.b.States(m); return r }

// Stroke sets the stroke width and color.
func (r *Request) Stroke(width int, c shape.Color) *Request {
	r.b.StrokeWidth(width).StrokeColor(c)
	return r
}

// Radius sets a uniform corner radius.
func (r *Request) Radius(radius float64) *Request { r.b.Radius(radius); return r }

// Radii sets the 8 corner radii.
func (r *Request) Radii(radii ...float64) *Request { r.b.Radii(radii...); return r }

// Width sets the width in pixels.
func (r *Request) Width(w int) *Request { r.b.Width(w); return r }

// Height sets the height in pixels.
func (r *Request) Height(h int) *Request { r.b.Height(h); return r }

// Size sets width and height in pixels.
func (r *Request) Size(w, h int) *Request { r.b.Size(w, h); return r }

// Overlay requests or clears the interaction overlay.
func (r *Request) Overlay(on bool) *Request { r.b.Overlay(on); return r }

// OverlayColor sets the overlay color and requests the overlay.
func (r *Request) OverlayColor(c shape.Color) *Request { r.b.OverlayColor(c); return r }

// Params returns the frozen parameters.
func (r *Request) Params() (shape.Params, error) {
	return r.b.Build()
}

// Get materializes through the cache.
func (r *Request) Get(ctx context.Context) (render.Resource, error) {
	return r.Materialize(ctx, false)
}

// Fresh builds a new resource without reading or modifying the cache.
func (r *Request) Fresh(ctx context.Context) (render.Resource, error) {
	return r.Materialize(ctx, true)
}

// Materialize builds or fetches the resource.
func (r *Request) Materialize(ctx context.Context, bypass bool) (render.Resource, error) {
	if r.svc == nil {
		return nil, ErrNilService
	}
	p, err := r.b.Build()
	if err != nil {
		return nil, err
	}
	return r.svc.Materialize(ctx, p, bypass)
}
