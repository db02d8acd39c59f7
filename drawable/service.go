package drawable

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/tinyshape/cache"
	"github.com/jonwraymond/tinyshape/engine"
	"github.com/jonwraymond/tinyshape/observe"
	"github.com/jonwraymond/tinyshape/render"
	"github.com/jonwraymond/tinyshape/shape"
)

const outcomeBypass = "bypass"

// entry is a cached resource with the kind it was built from.
type entry struct {
	res  render.Resource
	kind shape.Kind
}

// Service materializes shapes through a bounded LRU cache.
type Service struct {
	cfg     Config
	engine  *engine.Engine
	lru     *cache.LRU[entry]
	loader  *cache.Loader[entry]
	keyer   cache.Keyer[shape.Params]
	mw      *observe.Middleware
	logger  observe.Logger
	metrics observe.Metrics
	gauges  metric.Registration

	bypassed atomic.Uint64
}

// Stats is a snapshot of service activity.
type Stats struct {
	cache.Stats

	Bypassed    uint64 // constructions that skipped the cache
	Degraded    uint64 // overlays dropped for lack of platform support
	Synthesized uint64 // overlay state maps derived rather than supplied
}

// New creates a service. Zero config fields take their defaults.
func New(cfg Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	mw := observe.NopMiddleware()
	if o.observer != nil {
		m, err := observe.MiddlewareFromObserver(o.observer)
		if err != nil {
			return nil, fmt.Errorf("drawable: metrics: %w", err)
		}
		mw = m
	}
	mw = mw.With(o.tracer, o.metrics, o.logger)

	s := &Service{
		cfg:     cfg,
		engine:  o.engine,
		mw:      mw,
		logger:  mw.Logger(),
		metrics: mw.Metrics(),
	}

	if s.engine == nil {
		engOpts := append([]engine.Option{engine.WithLogger(s.logger)}, o.engineOpts...)
		e, err := engine.New(engine.Config{Mode: cfg.Mode}, engOpts...)
		if err != nil {
			return nil, err
		}
		s.engine = e
	}

	s.keyer = cache.KeyerFunc[shape.Params](shape.Fingerprint)
	if cfg.OverlayPolicy == OverlayKeyed {
		s.keyer = cache.KeyerFunc[shape.Params](shape.EffectFingerprint)
	}

	s.lru = cache.NewLRU[entry](cache.Policy{Capacity: cfg.Capacity}, s.evicted)
	s.loader = cache.NewLoader[entry](s.lru)

	if obs := o.observer; obs != nil {
		reg, err := observe.ObserveCache(obs.Meter(),
			func() int64 { return int64(s.lru.Len()) },
			func() int64 { return int64(s.lru.Capacity()) },
		)
		if err != nil {
			return nil, fmt.Errorf("drawable: cache gauges: %w", err)
		}
		s.gauges = reg
	}

	return s, nil
}

// Materialize returns the resource for p. With bypass false, a cached
// resource is returned as is (the same instance on every hit) and a newly
// built one is cached. With bypass true, a fresh resource is built and the
// cache is neither read nor modified.
func (s *Service) Materialize(ctx context.Context, p shape.Params, bypass bool) (render.Resource, error) {
	if s == nil {
		return nil, ErrNilService
	}

	meta := observe.ShapeMeta{Kind: p.Kind().String(), Overlay: p.Overlay()}
	uncached := bypass || (p.Overlay() && s.cfg.OverlayPolicy == OverlayBypass)
	if uncached {
		meta.Bypass = true
	} else {
		meta.Fingerprint = s.keyer.Key(p)
	}

	var res render.Resource
	_, err := s.mw.Wrap(func(ctx context.Context, meta observe.ShapeMeta) (string, error) {
		var (
			outcome string
			err     error
		)
		res, outcome, err = s.materialize(ctx, p, meta, bypass)
		return outcome, err
	})(ctx, meta)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) materialize(ctx context.Context, p shape.Params, meta observe.ShapeMeta, bypass bool) (render.Resource, string, error) {
	if p.Overlay() && s.cfg.OverlayPolicy == OverlayBypass {
		s.bypassed.Add(1)
		res, err := s.buildOverlay(ctx, p, bypass)
		return res, outcomeBypass, err
	}
	if meta.Bypass {
		s.bypassed.Add(1)
		res, err := s.engine.Build(ctx, p)
		return res, outcomeBypass, err
	}

	e, outcome, err := s.loader.Load(meta.Fingerprint, func() (entry, error) {
		res, err := s.engine.Build(ctx, p)
		if err != nil {
			return entry{}, err
		}
		return entry{res: res, kind: p.Kind()}, nil
	})
	return e.res, outcome.String(), err
}

// buildOverlay builds an uncached overlay whose content comes from a nested
// materialization of the overlay-free parameters.
func (s *Service) buildOverlay(ctx context.Context, p shape.Params, bypass bool) (render.Resource, error) {
	if err := s.engine.Check(p); err != nil {
		return nil, err
	}
	content, err := s.Materialize(ctx, p.WithoutOverlay(), bypass)
	if err != nil {
		return nil, err
	}
	return s.engine.Overlay(ctx, p, content)
}

func (s *Service) evicted(key string, e entry) {
	ctx := context.Background()
	s.metrics.RecordEviction(ctx, e.kind.String())
	s.logger.WithShape(observe.ShapeMeta{Kind: e.kind.String(), Fingerprint: key}).
		Debug(ctx, "evicted least recently used shape")
}

// Contains reports whether the resource for p is cached. It does not touch
// the entry.
func (s *Service) Contains(p shape.Params) bool {
	_, ok := s.lru.Peek(s.keyer.Key(p))
	return ok
}

// Key returns the cache key the service uses for p.
func (s *Service) Key(p shape.Params) string {
	return s.keyer.Key(p)
}

// Keys returns the cached keys from most to least recently used.
func (s *Service) Keys() []string {
	return s.lru.Keys()
}

// Len returns the number of cached resources.
func (s *Service) Len() int {
	return s.lru.Len()
}

// Capacity returns the maximum number of cached resources.
func (s *Service) Capacity() int {
	return s.lru.Capacity()
}

// Purge drops every cached resource.
func (s *Service) Purge() {
	s.lru.Purge()
}

// Config returns the service configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// Engine returns the construction engine.
func (s *Service) Engine() *engine.Engine {
	return s.engine
}

// Stats returns a snapshot of cache and construction counters.
func (s *Service) Stats() Stats {
	return Stats{
		Stats:       s.loader.Stats(),
		Bypassed:    s.bypassed.Load(),
		Degraded:    s.engine.Degraded(),
		Synthesized: s.engine.Synthesized(),
	}
}

// Close releases telemetry registrations. The service remains usable.
func (s *Service) Close() error {
	if s.gauges == nil {
		return nil
	}
	return s.gauges.Unregister()
}
