package observe

import (
	"bytes"
	"context"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

type testRig struct {
	mw       *Middleware
	spans    *tracetest.SpanRecorder
	reader   *sdkmetric.ManualReader
	logs     *bytes.Buffer
	provider *sdktrace.TracerProvider
}

func newTestRig(t *testing.T, level string) testRig {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	metrics, reader, _ := newTestMetrics(t)
	logs := &bytes.Buffer{}
	mw := NewMiddleware(NewTracer(tp.Tracer("test")), metrics, NewLoggerWithWriter(level, logs))
	return testRig{mw: mw, spans: spans, reader: reader, logs: logs, provider: tp}
}

func TestMiddleware_SuccessPath(t *testing.T) {
	rig := newTestRig(t, "debug")
	meta := ShapeMeta{Kind: "oval", Fingerprint: "k=1|f=0|sw=0|sc=0|r=0"}

	wrapped := rig.mw.Wrap(func(ctx context.Context, m ShapeMeta) (string, error) {
		return "miss", nil
	})
	outcome, err := wrapped(context.Background(), meta)
	if err != nil || outcome != "miss" {
		t.Fatalf("wrapped() = %q, %v", outcome, err)
	}

	spans := rig.spans.Ended()
	if len(spans) != 1 || spans[0].Name() != "shape.materialize.oval" {
		t.Fatalf("unexpected spans: %v", spans)
	}
	if v := spanAttrs(spans[0])[AttrOutcome]; v.AsString() != "miss" {
		t.Errorf("span outcome = %v", v.Emit())
	}

	if got := sumInt64(t, findMetric(collect(t, rig.reader), MetricMaterializeTotal)); got != 1 {
		t.Errorf("total = %d, want 1", got)
	}

	entries := decodeLines(t, rig.logs)
	if len(entries) != 1 || entries[0]["level"] != "debug" || entries[0][AttrOutcome] != "miss" {
		t.Errorf("unexpected log entries: %v", entries)
	}
}

func TestMiddleware_ErrorPath(t *testing.T) {
	rig := newTestRig(t, "info")
	boom := errors.New("boom")

	wrapped := rig.mw.Wrap(func(ctx context.Context, m ShapeMeta) (string, error) {
		return "miss", boom
	})
	_, err := wrapped(context.Background(), ShapeMeta{Kind: "ring"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error unchanged, got %v", err)
	}

	if got := sumInt64(t, findMetric(collect(t, rig.reader), MetricMaterializeErrors)); got != 1 {
		t.Errorf("errors = %d, want 1", got)
	}

	entries := decodeLines(t, rig.logs)
	if len(entries) != 1 || entries[0]["level"] != "error" || entries[0]["error"] != "boom" {
		t.Errorf("unexpected log entries: %v", entries)
	}
}

func TestMiddleware_PropagatesSpanContext(t *testing.T) {
	rig := newTestRig(t, "error")

	var inner trace.SpanContext
	wrapped := rig.mw.Wrap(func(ctx context.Context, m ShapeMeta) (string, error) {
		inner = trace.SpanContextFromContext(ctx)
		return "hit", nil
	})
	_, _ = wrapped(context.Background(), ShapeMeta{Kind: "line"})

	if !inner.IsValid() {
		t.Fatal("wrapped function did not receive a span context")
	}
	if inner.SpanID() != rig.spans.Ended()[0].SpanContext().SpanID() {
		t.Error("wrapped function saw a different span")
	}
}

func TestNewMiddleware_NilComponents(t *testing.T) {
	mw := NewMiddleware(nil, nil, nil)
	outcome, err := mw.Wrap(func(ctx context.Context, m ShapeMeta) (string, error) {
		return "bypass", nil
	})(context.Background(), ShapeMeta{Kind: "oval"})
	if err != nil || outcome != "bypass" {
		t.Fatalf("got %q, %v", outcome, err)
	}
	if mw.Metrics() == nil || mw.Logger() == nil {
		t.Error("nil components were not replaced")
	}
}

func TestMiddleware_WithReplacesNonNil(t *testing.T) {
	base := NopMiddleware()
	logs := &bytes.Buffer{}
	logger := NewLoggerWithWriter("debug", logs)

	mw := base.With(nil, nil, logger)
	if mw.Logger() != logger {
		t.Error("logger was not replaced")
	}
	if mw.Metrics() != base.Metrics() {
		t.Error("metrics changed without an override")
	}
	if base.Logger() == logger {
		t.Error("With modified the receiver")
	}

	_, _ = mw.Wrap(func(ctx context.Context, m ShapeMeta) (string, error) {
		return "miss", nil
	})(context.Background(), ShapeMeta{Kind: "oval"})
	if logs.Len() == 0 {
		t.Error("override logger received nothing")
	}
}
