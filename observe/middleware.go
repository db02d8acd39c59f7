package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// MaterializeFunc performs one materialization and reports the cache outcome
// ("hit", "miss", "shared" or "bypass").
type MaterializeFunc func(ctx context.Context, meta ShapeMeta) (outcome string, err error)

// Middleware wraps materialization with tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: Wrap returns a MaterializeFunc safe for concurrent use.
//   - Context: the span context is passed to the wrapped function.
//   - Errors: errors from the wrapped function are recorded and returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware. Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = NopTracer()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{tracer: tracer, metrics: metrics, logger: logger}
}

// NopMiddleware returns a Middleware that records nothing.
func NopMiddleware() *Middleware {
	return NewMiddleware(nil, nil, nil)
}

// Metrics returns the metrics sink used by the middleware.
func (m *Middleware) Metrics() Metrics { return m.metrics }

// Logger returns the logger used by the middleware.
func (m *Middleware) Logger() Logger { return m.logger }

// With returns a copy of m with each non-nil component replaced.
func (m *Middleware) With(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	out := *m
	if tracer != nil {
		out.tracer = tracer
	}
	if metrics != nil {
		out.metrics = metrics
	}
	if logger != nil {
		out.logger = logger
	}
	return &out
}

// Wrap wraps fn with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn MaterializeFunc) MaterializeFunc {
	return func(ctx context.Context, meta ShapeMeta) (string, error) {
		ctx, span := m.tracer.StartSpan(ctx, meta)

		start := time.Now()
		outcome, err := fn(ctx, meta)
		duration := time.Since(start)

		if outcome != "" {
			span.SetAttributes(attribute.String(AttrOutcome, outcome))
		}
		m.tracer.EndSpan(span, err)

		m.metrics.RecordMaterialize(ctx, meta, outcome, duration, err)

		log := m.logger.WithShape(meta)
		fields := []Field{
			{Key: AttrOutcome, Value: outcome},
			{Key: "duration_ms", Value: float64(duration) / float64(time.Millisecond)},
		}
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			log.Error(ctx, "shape materialization failed", fields...)
		} else {
			log.Debug(ctx, "shape materialized", fields...)
		}

		return outcome, err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
