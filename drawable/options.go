package drawable

import (
	"github.com/jonwraymond/tinyshape/engine"
	"github.com/jonwraymond/tinyshape/observe"
)

// Option configures a Service.
type Option func(*options)

type options struct {
	engine     *engine.Engine
	engineOpts []engine.Option
	observer   observe.Observer
	logger     observe.Logger
	metrics    observe.Metrics
	tracer     observe.Tracer
}

// WithEngine sets the construction engine. Config.Mode is ignored.
func WithEngine(e *engine.Engine) Option {
	return func(o *options) { o.engine = e }
}

// WithEngineOptions passes options to the engine the service creates.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(o *options) { o.engineOpts = append(o.engineOpts, opts...) }
}

// WithObserver instruments the service with obs: spans, metrics, logs and
// cache gauges. WithLogger, WithMetrics and WithTracer take precedence over
// the observer's components.
func WithObserver(obs observe.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithLogger sets the service logger.
func WithLogger(l observe.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m observe.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTracer sets the tracer.
func WithTracer(t observe.Tracer) Option {
	return func(o *options) { o.tracer = t }
}
