package cache

// Keyer derives a cache key from a request value.
//
// Contract:
// - Determinism: equal inputs must produce the same key.
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: key derivation cannot fail.
type Keyer[T any] interface {
	Key(v T) string
}

// KeyerFunc adapts a plain function to the Keyer interface.
type KeyerFunc[T any] func(v T) string

// Key calls f(v).
func (f KeyerFunc[T]) Key(v T) string {
	return f(v)
}
