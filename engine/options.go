package engine

import (
	"github.com/jonwraymond/tinyshape/observe"
	"github.com/jonwraymond/tinyshape/palette"
	"github.com/jonwraymond/tinyshape/platform"
	"github.com/jonwraymond/tinyshape/render"
)

// Option configures an Engine.
type Option func(*Engine)

// WithRenderer sets the rendering primitive. Default: render.NewRaster().
func WithRenderer(r render.Renderer) Option {
	return func(e *Engine) {
		if r != nil {
			e.renderer = r
		}
	}
}

// WithPlatform sets the capability source. When p also implements
// platform.Density it is used for unit conversion too.
// Default: platform.Default().
func WithPlatform(p platform.Platform) Option {
	return func(e *Engine) {
		if p == nil {
			return
		}
		e.platform = p
		if d, ok := p.(platform.Density); ok {
			e.density = d
		}
	}
}

// WithDensity sets the unit converter.
func WithDensity(d platform.Density) Option {
	return func(e *Engine) {
		if d != nil {
			e.density = d
		}
	}
}

// WithDeriver sets the color deriver. Default: palette.HSL{}.
func WithDeriver(d palette.Deriver) Option {
	return func(e *Engine) {
		if d != nil {
			e.deriver = d
		}
	}
}

// WithLogger sets the logger for advisories and degradations.
func WithLogger(l observe.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
