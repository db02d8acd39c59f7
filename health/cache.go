package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/tinyshape/cache"
)

// Cache checker defaults.
const (
	DefaultFullThreshold = 0.95
	DefaultMinHitRatio   = 0.5
	DefaultWarmup        = 100
)

// CacheCheckerConfig configures a CacheChecker. Zero fields take defaults.
type CacheCheckerConfig struct {
	// FullThreshold is the utilization at or above which the cache is degraded.
	FullThreshold float64

	// MinHitRatio is the lowest acceptable hit ratio once warmed up.
	MinHitRatio float64

	// Warmup is the number of lookups before the hit ratio is judged.
	Warmup uint64
}

// CacheChecker reports on shape cache pressure and effectiveness.
type CacheChecker struct {
	stats func() cache.Stats
	cfg   CacheCheckerConfig
}

// NewCacheChecker creates a checker that reads a snapshot from stats on every
// check.
func NewCacheChecker(stats func() cache.Stats, cfg CacheCheckerConfig) *CacheChecker {
	if cfg.FullThreshold <= 0 {
		cfg.FullThreshold = DefaultFullThreshold
	}
	if cfg.MinHitRatio <= 0 {
		cfg.MinHitRatio = DefaultMinHitRatio
	}
	if cfg.Warmup == 0 {
		cfg.Warmup = DefaultWarmup
	}
	return &CacheChecker{stats: stats, cfg: cfg}
}

// Name implements Checker.
func (c *CacheChecker) Name() string { return "cache" }

// Check implements Checker.
func (c *CacheChecker) Check(ctx context.Context) Result {
	if c.stats == nil {
		return Unhealthy("no stats source", ErrNilSource)
	}
	if err := ctx.Err(); err != nil {
		return Unhealthy("check cancelled", err)
	}

	s := c.stats()
	details := map[string]any{
		"size":        s.Size,
		"capacity":    s.Capacity,
		"utilization": s.Utilization(),
		"hit_ratio":   s.HitRatio(),
		"lookups":     s.Lookups(),
		"evictions":   s.Evictions,
		"failures":    s.Failures,
	}

	if u := s.Utilization(); u >= c.cfg.FullThreshold {
		return Degraded(fmt.Sprintf("cache %.0f%% full", u*100)).WithDetails(details)
	}
	if s.Lookups() >= c.cfg.Warmup && s.HitRatio() < c.cfg.MinHitRatio {
		return Degraded(fmt.Sprintf("hit ratio %.2f below %.2f", s.HitRatio(), c.cfg.MinHitRatio)).WithDetails(details)
	}
	return Healthy("cache ok").WithDetails(details)
}
