package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/tinyshape/observe"
)

// DefaultTimeout bounds a CheckAll run when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// AggregatorConfig configures an Aggregator.
type AggregatorConfig struct {
	// Timeout bounds a whole CheckAll run. Zero means DefaultTimeout.
	Timeout time.Duration

	// Sequential runs checks one after another instead of concurrently.
	Sequential bool

	// Logger receives a warning for every check that is not healthy.
	// Nil disables logging.
	Logger observe.Logger
}

// Aggregator runs a set of named checkers and folds their results.
type Aggregator struct {
	cfg AggregatorConfig

	mu       sync.RWMutex
	checkers map[string]Checker
	order    []string
}

// NewAggregator creates an empty aggregator.
func NewAggregator(cfg ...AggregatorConfig) *Aggregator {
	var c AggregatorConfig
	if len(cfg) > 0 {
		c = cfg[0]
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Logger == nil {
		c.Logger = observe.NopLogger()
	}
	return &Aggregator{cfg: c, checkers: make(map[string]Checker)}
}

// Register adds or replaces the checker under name.
func (a *Aggregator) Register(name string, c Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.checkers[name]; !ok {
		a.order = append(a.order, name)
	}
	a.checkers[name] = c
}

// Unregister removes the checker under name.
func (a *Aggregator) Unregister(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.checkers[name]; !ok {
		return
	}
	delete(a.checkers, name)
	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// CheckerNames returns registered names in registration order.
func (a *Aggregator) CheckerNames() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]string(nil), a.order...)
}

// Check runs the checker registered under name.
func (a *Aggregator) Check(ctx context.Context, name string) (Result, error) {
	a.mu.RLock()
	c, ok := a.checkers[name]
	a.mu.RUnlock()
	if !ok {
		return Result{}, ErrCheckerNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()
	return a.run(ctx, name, c), nil
}

// CheckAll runs every registered checker and returns results by name.
func (a *Aggregator) CheckAll(ctx context.Context) map[string]Result {
	a.mu.RLock()
	names := append([]string(nil), a.order...)
	checkers := make([]Checker, len(names))
	for i, n := range names {
		checkers[i] = a.checkers[n]
	}
	a.mu.RUnlock()

	results := make(map[string]Result, len(names))
	if len(names) == 0 {
		return results
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	if a.cfg.Sequential {
		for i, n := range names {
			results[n] = a.run(ctx, n, checkers[i])
		}
		return results
	}

	var mu sync.Mutex
	var g errgroup.Group
	for i, n := range names {
		n := n
		c := checkers[i]
		g.Go(func() error {
			r := a.run(ctx, n, c)
			mu.Lock()
			results[n] = r
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// OverallStatus returns the worst status in results. No results is healthy.
func (a *Aggregator) OverallStatus(results map[string]Result) Status {
	overall := StatusHealthy
	for _, r := range results {
		if r.Status.worse(overall) {
			overall = r.Status
		}
	}
	return overall
}

func (a *Aggregator) run(ctx context.Context, name string, c Checker) Result {
	start := time.Now()
	done := make(chan Result, 1)
	go func() {
		done <- c.Check(ctx)
	}()

	var r Result
	select {
	case r = <-done:
		if r.Timestamp.IsZero() {
			r.Timestamp = start
		}
	case <-ctx.Done():
		r = Result{
			Status:    StatusUnhealthy,
			Message:   "check timed out",
			Error:     ErrCheckTimeout,
			Timestamp: start,
		}
	}
	r.Duration = time.Since(start)

	if r.Status != StatusHealthy {
		fields := []observe.Field{
			{Key: "check", Value: name},
			{Key: "status", Value: r.Status.String()},
			{Key: "message", Value: r.Message},
		}
		if r.Error != nil {
			fields = append(fields, observe.Field{Key: "error", Value: r.Error.Error()})
		}
		a.cfg.Logger.Warn(ctx, "health check not healthy", fields...)
	}
	return r
}

// Checker returns the aggregator as a single Checker named "aggregate".
func (a *Aggregator) Checker() Checker {
	return NewCheckerFunc("aggregate", func(ctx context.Context) Result {
		results := a.CheckAll(ctx)
		status := a.OverallStatus(results)

		details := make(map[string]any, len(results))
		for name, r := range results {
			details[name] = r.Status.String()
		}

		msg := "all checks passed"
		switch status {
		case StatusDegraded:
			msg = "some checks degraded"
		case StatusUnhealthy:
			msg = "some checks failed"
		}
		return Result{Status: status, Message: msg, Details: details, Timestamp: time.Now()}
	})
}
