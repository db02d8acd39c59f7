package drawable

import (
	"fmt"
	"strings"

	"github.com/jonwraymond/tinyshape/cache"
	"github.com/jonwraymond/tinyshape/engine"
)

// OverlayPolicy decides whether overlay composites are cached.
type OverlayPolicy int

const (
	// OverlayBypass never caches overlay composites. Their plain content is
	// materialized separately and may be cached.
	OverlayBypass OverlayPolicy = iota

	// OverlayKeyed caches overlay composites under a key that includes the
	// overlay flag and color.
	OverlayKeyed
)

// String returns the string representation of the policy.
func (p OverlayPolicy) String() string {
	switch p {
	case OverlayBypass:
		return "bypass"
	case OverlayKeyed:
		return "keyed"
	default:
		return "unknown"
	}
}

// ParseOverlayPolicy parses "bypass" or "keyed". The empty string is
// OverlayBypass.
func ParseOverlayPolicy(s string) (OverlayPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bypass":
		return OverlayBypass, nil
	case "keyed":
		return OverlayKeyed, nil
	default:
		return OverlayBypass, fmt.Errorf("%w: unknown overlay policy %q", ErrInvalidConfig, s)
	}
}

// Config configures a Service.
type Config struct {
	// Capacity is the maximum number of cached resources.
	// Zero means cache.DefaultCapacity.
	Capacity int

	OverlayPolicy OverlayPolicy

	// Mode is passed to the engine the service creates. It is ignored when
	// an engine is supplied with WithEngine.
	Mode engine.Mode
}

// DefaultConfig returns the default service configuration.
func DefaultConfig() Config {
	return Config{
		Capacity:      cache.DefaultCapacity,
		OverlayPolicy: OverlayBypass,
		Mode:          engine.Lenient,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("%w: capacity %d", ErrInvalidConfig, c.Capacity)
	}
	if c.OverlayPolicy != OverlayBypass && c.OverlayPolicy != OverlayKeyed {
		return fmt.Errorf("%w: overlay policy %d", ErrInvalidConfig, int(c.OverlayPolicy))
	}
	if c.Mode != engine.Lenient && c.Mode != engine.Strict {
		return fmt.Errorf("%w: mode %d", ErrInvalidConfig, int(c.Mode))
	}
	return nil
}
