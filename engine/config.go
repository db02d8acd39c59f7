package engine

import (
	"fmt"
	"strings"

	"github.com/jonwraymond/tinyshape/palette"
)

// DefaultSizeDP is the size substituted for a non-positive width or height.
const DefaultSizeDP = 20

// Mode selects how unresolvable overlay colors are handled.
type Mode int

const (
	// Lenient builds the overlay with whatever colors are available.
	Lenient Mode = iota
	// Strict refuses to build an overlay whose colors cannot be resolved.
	Strict
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseMode parses "lenient" or "strict", case-insensitively. The empty
// string is Lenient.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return Lenient, nil
	case "strict":
		return Strict, nil
	default:
		return Lenient, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
	}
}

// Config configures an Engine. Zero fields take their defaults.
type Config struct {
	Mode Mode

	// DefaultSizeDP replaces a non-positive width or height. Zero means
	// DefaultSizeDP.
	DefaultSizeDP float64

	// PressedShift is the lightness fraction used to derive a pressed color.
	// Zero means palette.PressedShift.
	PressedShift float64

	// MaxConcurrentRenders bounds simultaneous shape rasterization. Zero
	// leaves rendering unbounded.
	MaxConcurrentRenders int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Mode:          Lenient,
		DefaultSizeDP: DefaultSizeDP,
		PressedShift:  palette.PressedShift,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Mode != Lenient && c.Mode != Strict {
		return fmt.Errorf("%w: mode %d", ErrInvalidConfig, int(c.Mode))
	}
	if c.DefaultSizeDP < 0 {
		return fmt.Errorf("%w: default size %v", ErrInvalidConfig, c.DefaultSizeDP)
	}
	if c.PressedShift < 0 || c.PressedShift > 1 {
		return fmt.Errorf("%w: pressed shift %v not in [0, 1]", ErrInvalidConfig, c.PressedShift)
	}
	if c.MaxConcurrentRenders < 0 {
		return fmt.Errorf("%w: max concurrent renders %d", ErrInvalidConfig, c.MaxConcurrentRenders)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.DefaultSizeDP == 0 {
		c.DefaultSizeDP = DefaultSizeDP
	}
	if c.PressedShift == 0 {
		c.PressedShift = palette.PressedShift
	}
	return c
}
