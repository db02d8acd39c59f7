// Package platform describes the host capabilities the construction engine
// branches on and converts density-independent units to pixels.
package platform

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by FromEnv.
const (
	EnvDensity   = "TINYSHAPE_DENSITY"
	EnvDarkMode  = "TINYSHAPE_DARK_MODE"
	EnvOverlay   = "TINYSHAPE_OVERLAY"
	EnvStateFill = "TINYSHAPE_STATE_FILL"
)

// Platform reports host capabilities.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Purity: answers must not change while a resource is being constructed.
type Platform interface {
	// SupportsOverlayEffect reports whether interaction overlays can be drawn.
	SupportsOverlayEffect() bool

	// SupportsStateFill reports whether a fill can vary by interaction state.
	SupportsStateFill() bool

	// IsDarkMode reports whether the host is in a dark color scheme.
	IsDarkMode() bool
}

// Density converts density-independent units to pixels.
type Density interface {
	DPToPixels(dp float64) int
}

// Static is a fixed Platform and Density.
type Static struct {
	Overlay   bool
	StateFill bool
	DarkMode  bool

	// Scale is pixels per density-independent unit. Zero or negative means 1.
	Scale float64
}

// Default returns a capable light-mode platform at scale 1.
func Default() Static {
	return Static{Overlay: true, StateFill: true, Scale: 1}
}

// SupportsOverlayEffect implements Platform.
func (s Static) SupportsOverlayEffect() bool { return s.Overlay }

// SupportsStateFill implements Platform.
func (s Static) SupportsStateFill() bool { return s.StateFill }

// IsDarkMode implements Platform.
func (s Static) IsDarkMode() bool { return s.DarkMode }

// DPToPixels implements Density, rounding half up.
func (s Static) DPToPixels(dp float64) int {
	scale := s.Scale
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	return int(dp*scale + 0.5)
}

// FromEnv starts from Default and applies any TINYSHAPE_* overrides.
func FromEnv() (Static, error) {
	s := Default()

	if v, ok := lookup(EnvDensity); ok {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return Static{}, fmt.Errorf("platform: invalid %s %q", EnvDensity, v)
		}
		s.Scale = scale
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{EnvDarkMode, &s.DarkMode},
		{EnvOverlay, &s.Overlay},
		{EnvStateFill, &s.StateFill},
	}
	for _, f := range flags {
		v, ok := lookup(f.name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Static{}, fmt.Errorf("platform: invalid %s %q", f.name, v)
		}
		*f.dst = b
	}

	return s, nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Ensure Static implements Platform and Density
var (
	_ Platform = Static{}
	_ Density  = Static{}
)
