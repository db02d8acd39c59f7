package shape

import "errors"

// Validation errors returned by Builder.Build.
var (
	// ErrInvalidKind indicates a Kind outside Rectangle..Ring.
	ErrInvalidKind = errors.New("shape: invalid kind")

	// ErrInvalidRadii indicates a corner radii sequence that does not hold 8 values.
	ErrInvalidRadii = errors.New("shape: corner radii must hold 8 values")

	// ErrNegativeStroke indicates a negative stroke width.
	ErrNegativeStroke = errors.New("shape: stroke width must not be negative")

	// ErrNegativeRadius indicates a negative uniform corner radius.
	ErrNegativeRadius = errors.New("shape: corner radius must not be negative")

	// ErrNonFiniteRadius indicates a NaN or infinite corner radius.
	ErrNonFiniteRadius = errors.New("shape: corner radius must be finite")
)
