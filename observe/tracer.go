package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Attribute keys shared by spans, metrics and log entries.
const (
	AttrKind        = "shape.kind"
	AttrFingerprint = "shape.fingerprint"
	AttrOverlay     = "shape.overlay"
	AttrBypass      = "shape.bypass"
	AttrOutcome     = "shape.outcome"
	AttrError       = "shape.error"
)

// ShapeMeta describes one materialization for telemetry purposes.
type ShapeMeta struct {
	Kind        string // shape kind name (required)
	Fingerprint string // cache key; empty for uncached builds
	Overlay     bool
	Bypass      bool
}

// SpanName returns the deterministic span name for this shape.
// Format: shape.materialize.<kind>
func (m ShapeMeta) SpanName() string {
	if m.Kind == "" {
		return "shape.materialize"
	}
	return "shape.materialize." + m.Kind
}

// Validate reports whether the metadata is usable.
func (m ShapeMeta) Validate() error {
	if m.Kind == "" {
		return ErrMissingShapeKind
	}
	return nil
}

func (m ShapeMeta) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(AttrKind, m.Kind),
		attribute.Bool(AttrOverlay, m.Overlay),
		attribute.Bool(AttrBypass, m.Bypass),
	}
	if m.Fingerprint != "" {
		attrs = append(attrs, attribute.String(AttrFingerprint, m.Fingerprint))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with shape-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a materialization.
	StartSpan(ctx context.Context, meta ShapeMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartSpan(ctx context.Context, meta ShapeMeta) (context.Context, trace.Span) {
	attrs := append(meta.attributes(), attribute.Bool(AttrError, false))
	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool(AttrError, true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

// NopTracer returns a Tracer whose spans are never recorded.
func NopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta ShapeMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, _ error) {
	span.End()
}
