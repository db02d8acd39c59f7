package shape

import (
	"fmt"
	"strings"
)

// Kind is the geometric primitive a resource draws.
type Kind int

const (
	// Rectangle is a rectangle, possibly with rounded corners.
	Rectangle Kind = iota
	// Oval is an ellipse inscribed in the bounds.
	Oval
	// Line is a horizontal line across the vertical center of the bounds.
	Line
	// Ring is an annulus inscribed in the bounds.
	Ring
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Rectangle:
		return "rectangle"
	case Oval:
		return "oval"
	case Line:
		return "line"
	case Ring:
		return "ring"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= Rectangle && k <= Ring
}

// ParseKind parses a kind name as produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle", "rect":
		return Rectangle, nil
	case "oval":
		return Oval, nil
	case "line":
		return Line, nil
	case "ring":
		return Ring, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}
