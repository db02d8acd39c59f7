package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricMaterializeTotal    = "tinyshape.materialize.total"
	MetricMaterializeErrors   = "tinyshape.materialize.errors"
	MetricMaterializeDuration = "tinyshape.materialize.duration_ms"
	MetricCacheEvictions      = "tinyshape.cache.evictions"
	MetricCacheSize           = "tinyshape.cache.size"
	MetricCacheCapacity       = "tinyshape.cache.capacity"
)

// Metrics records materialization metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordMaterialize records one materialization with its cache outcome.
	RecordMaterialize(ctx context.Context, meta ShapeMeta, outcome string, duration time.Duration, err error)

	// RecordEviction records a capacity eviction of a shape of the given kind.
	RecordEviction(ctx context.Context, kind string)
}

type metricsImpl struct {
	totalCount    metric.Int64Counter
	errorCount    metric.Int64Counter
	durationHist  metric.Float64Histogram
	evictionCount metric.Int64Counter
}

// NewMetrics creates the materialization instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		MetricMaterializeTotal,
		metric.WithDescription("Total number of shape materializations"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		MetricMaterializeErrors,
		metric.WithDescription("Total number of failed shape materializations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		MetricMaterializeDuration,
		metric.WithDescription("Shape materialization duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	evictionCount, err := meter.Int64Counter(
		MetricCacheEvictions,
		metric.WithDescription("Cached shapes evicted for capacity"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:    totalCount,
		errorCount:    errorCount,
		durationHist:  durationHist,
		evictionCount: evictionCount,
	}, nil
}

func (m *metricsImpl) RecordMaterialize(ctx context.Context, meta ShapeMeta, outcome string, duration time.Duration, err error) {
	opt := metric.WithAttributes(
		attribute.String(AttrKind, meta.Kind),
		attribute.Bool(AttrOverlay, meta.Overlay),
		attribute.String(AttrOutcome, outcome),
	)

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration)/float64(time.Millisecond), opt)
}

func (m *metricsImpl) RecordEviction(ctx context.Context, kind string) {
	m.evictionCount.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrKind, kind)))
}

// ObserveCache registers gauges reporting the cache size and capacity. The
// callbacks run on every collection; unregister when the cache goes away.
func ObserveCache(meter metric.Meter, size, capacity func() int64) (metric.Registration, error) {
	sizeGauge, err := meter.Int64ObservableGauge(
		MetricCacheSize,
		metric.WithDescription("Number of cached shapes"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}
	capGauge, err := meter.Int64ObservableGauge(
		MetricCacheCapacity,
		metric.WithDescription("Maximum number of cached shapes"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(sizeGauge, size())
		o.ObserveInt64(capGauge, capacity())
		return nil
	}, sizeGauge, capGauge)
}

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics { return noopMetrics{} }

type noopMetrics struct{}

func (noopMetrics) RecordMaterialize(context.Context, ShapeMeta, string, time.Duration, error) {}
func (noopMetrics) RecordEviction(context.Context, string)                                     {}
