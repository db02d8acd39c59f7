package drawable

import (
	"sync/atomic"

	"github.com/jonwraymond/tinyshape/cache"
)

var defaultService atomic.Pointer[Service]

// Configure installs the process-wide service with the given capacity. Only
// the first successful call installs a service; it reports whether this call
// did. A non-positive capacity means cache.DefaultCapacity.
func Configure(capacity int) bool {
	if defaultService.Load() != nil {
		return false
	}
	if capacity < 0 {
		capacity = 0
	}
	svc, err := New(Config{Capacity: capacity})
	if err != nil {
		return false
	}
	return defaultService.CompareAndSwap(nil, svc)
}

// Default returns the process-wide service, configuring it with
// cache.DefaultCapacity on first use.
func Default() *Service {
	if s := defaultService.Load(); s != nil {
		return s
	}
	Configure(cache.DefaultCapacity)
	return defaultService.Load()
}
