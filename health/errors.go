package health

import "errors"

var (
	// ErrCheckTimeout indicates a health check did not finish before the
	// aggregator deadline.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckerNotFound indicates no checker is registered under a name.
	ErrCheckerNotFound = errors.New("health: checker not found")

	// ErrNilSource indicates a checker was built without its data source.
	ErrNilSource = errors.New("health: nil source")
)
