// Package health reports whether a shape service is fit to serve.
//
// A Checker inspects one component and returns a Result with a Status of
// Healthy, Degraded, or Unhealthy. The Aggregator runs a set of checkers under
// a shared timeout and folds their results into a single status.
//
// Two checkers cover the shape pipeline:
//
//	agg := health.NewAggregator()
//	agg.Register("cache", health.NewCacheChecker(func() cache.Stats {
//	    return svc.Stats().Stats
//	}, health.CacheCheckerConfig{}))
//	agg.Register("platform", health.NewPlatformChecker(plat))
//
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
//
// CacheChecker degrades when the cache is nearly full or when, after a warm-up
// number of lookups, too few of them are served from the cache. PlatformChecker
// degrades when the host cannot draw interaction overlays, since every overlay
// request then falls back to plain content.
package health
