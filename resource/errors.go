package resource

import "errors"

var (
	// ErrMissingEnv indicates a reference to an unset environment variable.
	ErrMissingEnv = errors.New("resource: missing required environment variables")

	// ErrInvalidRegistration indicates an empty provider name or nil factory.
	ErrInvalidRegistration = errors.New("resource: invalid provider registration")

	// ErrAlreadyRegistered indicates a duplicate provider name.
	ErrAlreadyRegistered = errors.New("resource: provider already registered")

	// ErrProviderNotRegistered indicates a reference to an unknown provider.
	ErrProviderNotRegistered = errors.New("resource: provider is not registered")

	// ErrNotFound indicates a provider has no value for a name.
	ErrNotFound = errors.New("resource: not found")

	// ErrEmptyValue indicates a strict resolver received an empty value.
	ErrEmptyValue = errors.New("resource: empty value")

	// ErrInvalidDimension indicates a value that is not a dimension.
	ErrInvalidDimension = errors.New("resource: invalid dimension")
)
