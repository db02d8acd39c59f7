package engine

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigurationError.
var ErrConfiguration = errors.New("engine: configuration error")

// ErrInvalidConfig indicates a Config that fails validation.
var ErrInvalidConfig = errors.New("engine: invalid config")

// ConfigurationError reports parameters that cannot be built in Strict mode.
type ConfigurationError struct {
	Fingerprint string
	Reason      string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("engine: %s (shape %s)", e.Reason, e.Fingerprint)
}

// Unwrap returns ErrConfiguration.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
