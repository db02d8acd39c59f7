package cache

// DefaultCapacity is the capacity used when a policy does not set one.
const DefaultCapacity = 30

// Policy configures cache sizing.
type Policy struct {
	// Capacity is the maximum number of entries.
	// If zero or negative, DefaultCapacity is used.
	Capacity int
}

// DefaultPolicy returns the default cache policy.
// Capacity: 30
func DefaultPolicy() Policy {
	return Policy{Capacity: DefaultCapacity}
}

// EffectiveCapacity returns the capacity to use, applying the default.
func (p Policy) EffectiveCapacity() int {
	if p.Capacity <= 0 {
		return DefaultCapacity
	}
	return p.Capacity
}
