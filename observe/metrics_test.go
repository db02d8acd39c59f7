package observe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (Metrics, *sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m, reader, mp
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumInt64(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()
	if m == nil {
		return 0
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetrics_TotalAndErrors(t *testing.T) {
	m, reader, _ := newTestMetrics(t)
	ctx := context.Background()
	meta := ShapeMeta{Kind: "rectangle"}

	m.RecordMaterialize(ctx, meta, "miss", 2*time.Millisecond, nil)
	m.RecordMaterialize(ctx, meta, "hit", time.Microsecond, nil)
	m.RecordMaterialize(ctx, meta, "miss", time.Millisecond, errors.New("boom"))

	rm := collect(t, reader)
	if got := sumInt64(t, findMetric(rm, MetricMaterializeTotal)); got != 3 {
		t.Errorf("%s = %d, want 3", MetricMaterializeTotal, got)
	}
	if got := sumInt64(t, findMetric(rm, MetricMaterializeErrors)); got != 1 {
		t.Errorf("%s = %d, want 1", MetricMaterializeErrors, got)
	}
}

func TestMetrics_OutcomeLabel(t *testing.T) {
	m, reader, _ := newTestMetrics(t)
	m.RecordMaterialize(context.Background(), ShapeMeta{Kind: "oval", Overlay: true}, "shared", 0, nil)

	found := findMetric(collect(t, reader), MetricMaterializeTotal)
	if found == nil {
		t.Fatalf("%s not found", MetricMaterializeTotal)
	}
	dp := found.Data.(metricdata.Sum[int64]).DataPoints[0]

	want := map[attribute.Key]attribute.Value{
		AttrKind:    attribute.StringValue("oval"),
		AttrOverlay: attribute.BoolValue(true),
		AttrOutcome: attribute.StringValue("shared"),
	}
	for k, v := range want {
		got, ok := dp.Attributes.Value(k)
		if !ok || got != v {
			t.Errorf("attribute %s = %v, want %v", k, got.Emit(), v.Emit())
		}
	}
}

func TestMetrics_DurationHistogram(t *testing.T) {
	m, reader, _ := newTestMetrics(t)
	m.RecordMaterialize(context.Background(), ShapeMeta{Kind: "ring"}, "miss", 1500*time.Microsecond, nil)

	found := findMetric(collect(t, reader), MetricMaterializeDuration)
	if found == nil {
		t.Fatalf("%s not found", MetricMaterializeDuration)
	}
	hist, ok := found.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", found.Data)
	}
	if hist.DataPoints[0].Sum != 1.5 {
		t.Errorf("duration sum = %v, want 1.5", hist.DataPoints[0].Sum)
	}
}

func TestMetrics_Evictions(t *testing.T) {
	m, reader, _ := newTestMetrics(t)
	m.RecordEviction(context.Background(), "line")
	m.RecordEviction(context.Background(), "line")

	if got := sumInt64(t, findMetric(collect(t, reader), MetricCacheEvictions)); got != 2 {
		t.Errorf("%s = %d, want 2", MetricCacheEvictions, got)
	}
}

func TestObserveCache(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	size := int64(3)
	reg, err := ObserveCache(mp.Meter("test"), func() int64 { return size }, func() int64 { return 30 })
	if err != nil {
		t.Fatalf("ObserveCache() error = %v", err)
	}
	defer func() { _ = reg.Unregister() }()

	gauge := func(rm metricdata.ResourceMetrics, name string) int64 {
		found := findMetric(rm, name)
		if found == nil {
			t.Fatalf("%s not found", name)
		}
		return found.Data.(metricdata.Gauge[int64]).DataPoints[0].Value
	}

	rm := collect(t, reader)
	if got := gauge(rm, MetricCacheSize); got != 3 {
		t.Errorf("size = %d, want 3", got)
	}
	if got := gauge(rm, MetricCacheCapacity); got != 30 {
		t.Errorf("capacity = %d, want 30", got)
	}

	size = 7
	if got := gauge(collect(t, reader), MetricCacheSize); got != 7 {
		t.Errorf("size after change = %d, want 7", got)
	}
}

func TestMetrics_ConcurrentRecording(t *testing.T) {
	m, reader, _ := newTestMetrics(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordMaterialize(context.Background(), ShapeMeta{Kind: "oval"}, "hit", time.Microsecond, nil)
		}()
	}
	wg.Wait()

	if got := sumInt64(t, findMetric(collect(t, reader), MetricMaterializeTotal)); got != 50 {
		t.Errorf("total = %d, want 50", got)
	}
}
