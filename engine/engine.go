package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jonwraymond/tinyshape/observe"
	"github.com/jonwraymond/tinyshape/palette"
	"github.com/jonwraymond/tinyshape/platform"
	"github.com/jonwraymond/tinyshape/render"
	"github.com/jonwraymond/tinyshape/shape"
)

// MaskColor fills the overlay mask. Only its coverage matters.
const MaskColor = shape.Black

// Engine builds resources from shape parameters. It is safe for concurrent
// use.
type Engine struct {
	cfg      Config
	renderer render.Renderer
	platform platform.Platform
	density  platform.Density
	deriver  palette.Deriver
	logger   observe.Logger

	degraded    atomic.Uint64
	synthesized atomic.Uint64
}

// New creates an engine. cfg is validated; zero fields take their defaults.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	def := platform.Default()
	e := &Engine{
		cfg:      cfg.withDefaults(),
		renderer: render.NewRaster(),
		platform: def,
		density:  def,
		deriver:  palette.HSL{},
		logger:   observe.NopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.renderer = render.Limit(e.renderer, e.cfg.MaxConcurrentRenders)
	return e, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Platform returns the capability source.
func (e *Engine) Platform() platform.Platform { return e.platform }

// Degraded returns how many overlays were dropped because the platform could
// not draw them.
func (e *Engine) Degraded() uint64 { return e.degraded.Load() }

// Synthesized returns how many overlay state maps were derived rather than
// supplied.
func (e *Engine) Synthesized() uint64 { return e.synthesized.Load() }

// Size returns the effective pixel size of p.
func (e *Engine) Size(p shape.Params) (w, h int) {
	w, h = p.Width(), p.Height()
	if w <= 0 || h <= 0 {
		def := e.density.DPToPixels(e.cfg.DefaultSizeDP)
		if w <= 0 {
			w = def
		}
		if h <= 0 {
			h = def
		}
	}
	return w, h
}

// Spec returns the render spec for the plain content of p.
func (e *Engine) Spec(p shape.Params) render.ShapeSpec {
	w, h := e.Size(p)
	spec := render.ShapeSpec{
		Kind:   p.Kind(),
		Width:  w,
		Height: h,
		Fill:   render.SolidFill(p.Solid()),
	}
	if m, ok := p.States(); ok && e.platform.SupportsStateFill() {
		spec.Fill = render.StateFill(m)
	}
	if sw := p.StrokeWidth(); sw > 0 {
		spec.Stroke = &render.Stroke{Width: sw, Color: p.StrokeColor()}
	}
	if p.HasRadii() {
		spec.Radii = p.Radii()
	} else if r := p.Radius(); r > 0 {
		spec.Radius = r
	}
	return spec
}

// Build constructs the complete resource for p: the plain shape, or the shape
// under its overlay.
func (e *Engine) Build(ctx context.Context, p shape.Params) (render.Resource, error) {
	if err := e.Check(p); err != nil {
		return nil, err
	}
	content, err := e.Content(ctx, p)
	if err != nil {
		return nil, err
	}
	return e.Overlay(ctx, p, content)
}

// Check reports a *ConfigurationError when p requests an overlay whose colors
// cannot be resolved in Strict mode. It has no side effects, so callers run
// it before rendering anything.
func (e *Engine) Check(p shape.Params) error {
	if e.cfg.Mode != Strict || !p.Overlay() || !e.platform.SupportsOverlayEffect() {
		return nil
	}
	if _, ok := p.States(); ok {
		return nil
	}
	if _, ok := p.OverlayColor(); ok || p.Solid() != shape.Transparent {
		return nil
	}
	return &ConfigurationError{
		Fingerprint: shape.Fingerprint(p),
		Reason:      "overlay has no state colors, no overlay color and no solid color",
	}
}

// Content renders the plain shape for p, ignoring any overlay.
func (e *Engine) Content(_ context.Context, p shape.Params) (render.Resource, error) {
	res, err := e.renderer.RenderShape(e.Spec(p))
	if err != nil {
		return nil, fmt.Errorf("engine: render content: %w", err)
	}
	return res, nil
}

// Overlay places the overlay requested by p over content. It returns content
// unchanged when no overlay applies.
func (e *Engine) Overlay(ctx context.Context, p shape.Params, content render.Resource) (render.Resource, error) {
	states, apply, err := e.OverlayStates(ctx, p)
	if err != nil {
		return nil, err
	}
	if !apply {
		return content, nil
	}
	return e.Compose(ctx, p, states, content)
}

// OverlayStates resolves the overlay colors for p. apply is false when p
// requests no overlay or the platform cannot draw one.
func (e *Engine) OverlayStates(ctx context.Context, p shape.Params) (states shape.StateColorMap, apply bool, err error) {
	if !p.Overlay() {
		return shape.StateColorMap{}, false, nil
	}
	if !e.platform.SupportsOverlayEffect() {
		e.degraded.Add(1)
		e.logger.WithShape(meta(p)).Debug(ctx, "overlay effect unsupported; building plain shape")
		return shape.StateColorMap{}, false, nil
	}
	if m, ok := p.States(); ok {
		return m, true, nil
	}

	if err := e.Check(p); err != nil {
		return shape.StateColorMap{}, false, err
	}

	oc, hasOverlayColor := p.OverlayColor()

	e.synthesized.Add(1)
	e.logger.WithShape(meta(p)).Warn(ctx, "overlay requested without a state color map; synthesizing one",
		observe.Field{Key: "overlay_color", Value: hasOverlayColor})

	solid := p.Solid()
	if hasOverlayColor {
		return e.deriver.BuildStateColorMap(solid, oc, oc, solid), true, nil
	}
	pressed := palette.Pressed(e.deriver, solid, e.platform.IsDarkMode(), e.cfg.PressedShift)
	return e.deriver.BuildStateColorMap(solid, pressed, pressed, solid), true, nil
}

// Compose draws the overlay described by states over content, limited to a
// mask of p's footprint.
func (e *Engine) Compose(_ context.Context, p shape.Params, states shape.StateColorMap, content render.Resource) (render.Resource, error) {
	spec := e.Spec(p)
	spec.Fill = render.SolidFill(MaskColor)
	if spec.Stroke != nil {
		spec.Stroke.Color = MaskColor
	}
	mask, err := e.renderer.RenderShape(spec)
	if err != nil {
		return nil, fmt.Errorf("engine: render mask: %w", err)
	}
	res, err := e.renderer.RenderOverlay(states, content, mask)
	if err != nil {
		return nil, fmt.Errorf("engine: render overlay: %w", err)
	}
	return res, nil
}

func meta(p shape.Params) observe.ShapeMeta {
	return observe.ShapeMeta{
		Kind:    p.Kind().String(),
		Overlay: p.Overlay(),
	}
}
