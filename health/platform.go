package health

import (
	"context"

	"github.com/jonwraymond/tinyshape/platform"
)

// PlatformChecker reports host capabilities relevant to shape construction.
type PlatformChecker struct {
	p platform.Platform
}

// NewPlatformChecker creates a checker for p.
func NewPlatformChecker(p platform.Platform) *PlatformChecker {
	return &PlatformChecker{p: p}
}

// Name implements Checker.
func (c *PlatformChecker) Name() string { return "platform" }

// Check implements Checker. A host without overlay support is degraded: every
// overlay request falls back to plain content.
func (c *PlatformChecker) Check(ctx context.Context) Result {
	if c.p == nil {
		return Unhealthy("no platform", ErrNilSource)
	}
	details := map[string]any{
		"overlay":    c.p.SupportsOverlayEffect(),
		"state_fill": c.p.SupportsStateFill(),
		"dark_mode":  c.p.IsDarkMode(),
	}
	if !c.p.SupportsOverlayEffect() {
		return Degraded("overlay effects unsupported").WithDetails(details)
	}
	return Healthy("platform ok").WithDetails(details)
}
