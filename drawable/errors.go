package drawable

import "errors"

var (
	// ErrInvalidConfig indicates a Config that fails validation.
	ErrInvalidConfig = errors.New("drawable: invalid config")

	// ErrNilService indicates a method call on a nil *Service.
	ErrNilService = errors.New("drawable: service is nil")
)
