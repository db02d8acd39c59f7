package shape

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// Color is a non-premultiplied 32-bit color packed as 0xAARRGGBB.
type Color uint32

// Common reference colors.
const (
	Transparent Color = 0x00000000
	Black       Color = 0xFF000000
	White       Color = 0xFFFFFFFF
)

// ARGB packs the four channels into a Color.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// NRGBA converts c to the standard library's non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// String returns the color as #AARRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// FromColor converts any color.Color to a Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

// ParseColor parses #RGB, #RRGGBB or #AARRGGBB. The leading # is optional.
// Colors without an alpha component are opaque.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		fallthrough
	case 6:
		hex = "FF" + hex
	case 8:
	default:
		return 0, fmt.Errorf("shape: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("shape: invalid color %q: %w", s, err)
	}
	return Color(v), nil
}

// State is an interaction state a resource can be drawn in.
type State int

const (
	StateDefault State = iota
	StatePressed
	StateFocused
	StateHovered
	StateDisabled
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateDefault:
		return "default"
	case StatePressed:
		return "pressed"
	case StateFocused:
		return "focused"
	case StateHovered:
		return "hovered"
	case StateDisabled:
		return "disabled"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// StateColor associates a single state with a color.
type StateColor struct {
	State State
	Color Color
}

// StateColorMap maps interaction states to colors. States without an entry
// resolve to the fallback color.
//
// A StateColorMap is immutable; the zero value maps every state to Transparent.
type StateColorMap struct {
	entries  []StateColor
	fallback Color
}

// NewStateColorMap builds a map from entries. Later entries for the same state
// replace earlier ones.
func NewStateColorMap(fallback Color, entries ...StateColor) StateColorMap {
	byState := make(map[State]Color, len(entries))
	for _, e := range entries {
		byState[e.State] = e.Color
	}
	sorted := make([]StateColor, 0, len(byState))
	for s, c := range byState {
		sorted = append(sorted, StateColor{State: s, Color: c})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].State < sorted[j].State })
	return StateColorMap{entries: sorted, fallback: fallback}
}

// ColorFor returns the color for state s.
func (m StateColorMap) ColorFor(s State) Color {
	for _, e := range m.entries {
		if e.State == s {
			return e.Color
		}
	}
	return m.fallback
}

// Fallback returns the color used for states without an entry.
func (m StateColorMap) Fallback() Color {
	return m.fallback
}

// Entries returns a copy of the entries ordered by state.
func (m StateColorMap) Entries() []StateColor {
	out := make([]StateColor, len(m.entries))
	copy(out, m.entries)
	return out
}

// Equal reports whether m and o hold the same entries and fallback.
func (m StateColorMap) Equal(o StateColorMap) bool {
	return m.String() == o.String()
}

// String returns a stable serialization such as
// {default=4278190080,pressed=4294901760;*=0}.
func (m StateColorMap) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(e.State.String())
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatUint(uint64(e.Color), 10))
	}
	sb.WriteString(";*=")
	sb.WriteString(strconv.FormatUint(uint64(m.fallback), 10))
	sb.WriteByte('}')
	return sb.String()
}
