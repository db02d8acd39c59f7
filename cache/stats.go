package cache

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits      uint64 // served from the cache
	Misses    uint64 // built by the caller
	Shared    uint64 // waited on a concurrent build
	Failures  uint64 // builds that returned an error
	Evictions uint64 // entries dropped for capacity
	Size      int
	Capacity  int
}

// Lookups returns the number of successful loads.
func (s Stats) Lookups() uint64 {
	return s.Hits + s.Misses + s.Shared
}

// HitRatio returns the fraction of successful loads that did not run a build.
// It is zero before the first load.
func (s Stats) HitRatio() float64 {
	total := s.Lookups()
	if total == 0 {
		return 0
	}
	return float64(s.Hits+s.Shared) / float64(total)
}

// Utilization returns Size/Capacity, or zero for a zero capacity.
func (s Stats) Utilization() float64 {
	if s.Capacity <= 0 {
		return 0
	}
	return float64(s.Size) / float64(s.Capacity)
}
