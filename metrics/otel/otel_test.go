package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/LerianStudio/lib-metrics/metrics"
	"github.com/LerianStudio/lib-metrics/metrics/layer"
)

// newTestRecorder creates a Recorder wired to an in-memory ManualReader so
// we can collect and inspect metric data without any exporter.
func newTestRecorder(t *testing.T) (*Recorder, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := mp.Meter("lib-metrics-test")

	rec, err := New(meter)
	require.NoError(t, err)

	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	return rec, reader
}

// collect drains the ManualReader into a ResourceMetrics snapshot.
func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)

	return rm
}

// findMetric searches a ResourceMetrics snapshot for a metric by name.
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

func sumDataPoints(t *testing.T, m *metricdata.Metrics) []metricdata.DataPoint[float64] {
	t.Helper()

	data, ok := m.Data.(metricdata.Sum[float64])
	require.True(t, ok, "expected Sum[float64] data type, got %T", m.Data)

	return data.DataPoints
}

func gaugeDataPoints(t *testing.T, m *metricdata.Metrics) []metricdata.DataPoint[float64] {
	t.Helper()

	data, ok := m.Data.(metricdata.Gauge[float64])
	require.True(t, ok, "expected Gauge[float64] data type, got %T", m.Data)

	return data.DataPoints
}

func histogramDataPoints(t *testing.T, m *metricdata.Metrics) []metricdata.HistogramDataPoint[float64] {
	t.Helper()

	data, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok, "expected Histogram[float64] data type, got %T", m.Data)

	return data.DataPoints
}

func TestNew(t *testing.T) {
	t.Run("nil meter", func(t *testing.T) {
		rec, err := New(nil)
		require.ErrorIs(t, err, ErrNilMeter)
		assert.Nil(t, rec)
	})

	t.Run("valid meter", func(t *testing.T) {
		rec, _ := newTestRecorder(t)
		assert.NotNil(t, rec)
	})
}

func TestRegisterCounter(t *testing.T) {
	rec, reader := newTestRecorder(t)

	counter := rec.RegisterCounter(metrics.NewKey("requests_total", metrics.NewLabel("method", "GET")))
	counter.Inc()
	counter.Add(2)

	rm := collect(t, reader)
	m := findMetric(rm, "requests_total")
	require.NotNil(t, m)

	dps := sumDataPoints(t, m)
	require.Len(t, dps, 1)
	assert.Equal(t, float64(3), dps[0].Value)

	v, found := dps[0].Attributes.Value(attribute.Key("method"))
	require.True(t, found)
	assert.Equal(t, "GET", v.AsString())
}

func TestRegisterCounterHandleCaching(t *testing.T) {
	rec, reader := newTestRecorder(t)

	key := metrics.NewKey("hits", metrics.NewLabel("route", "/v1"))

	first := rec.RegisterCounter(key)
	second := rec.RegisterCounter(key)
	assert.Same(t, first, second)

	// Same name with different labels shares the instrument but not the
	// handle; the series stay separate.
	other := rec.RegisterCounter(metrics.NewKey("hits", metrics.NewLabel("route", "/v2")))
	assert.NotSame(t, first, other)

	first.Inc()
	other.Add(5)

	rm := collect(t, reader)
	m := findMetric(rm, "hits")
	require.NotNil(t, m)
	assert.Len(t, sumDataPoints(t, m), 2)
}

func TestRegisterGaugeArithmetic(t *testing.T) {
	rec, reader := newTestRecorder(t)

	gauge := rec.RegisterGauge(metrics.NewKey("pool_size"))
	gauge.Set(10)
	gauge.Inc()
	gauge.Add(-4)

	rm := collect(t, reader)
	m := findMetric(rm, "pool_size")
	require.NotNil(t, m)

	dps := gaugeDataPoints(t, m)
	require.Len(t, dps, 1)
	assert.Equal(t, float64(7), dps[0].Value)
}

func TestRegisterHistogram(t *testing.T) {
	rec, reader := newTestRecorder(t)

	histogram := rec.RegisterHistogram(metrics.NewKey("latency"))
	histogram.Observe(0.2)
	histogram.Observe(0.8)

	rm := collect(t, reader)
	m := findMetric(rm, "latency")
	require.NotNil(t, m)

	dps := histogramDataPoints(t, m)
	require.Len(t, dps, 1)
	assert.Equal(t, uint64(2), dps[0].Count)
	assert.Equal(t, float64(1), dps[0].Sum)
}

func TestAttributesBeforeFirstRegistration(t *testing.T) {
	rec, reader := newTestRecorder(t)

	rec.SetCounterAttribute("requests_total", metrics.Description("total requests"))
	rec.SetCounterAttribute("requests_total", metrics.Unit("1"))
	rec.SetHistogramAttribute("latency", metrics.Buckets{0.5, 1, 2})

	rec.RegisterCounter(metrics.NewKey("requests_total")).Inc()
	rec.RegisterHistogram(metrics.NewKey("latency")).Observe(0.7)

	rm := collect(t, reader)

	counter := findMetric(rm, "requests_total")
	require.NotNil(t, counter)
	assert.Equal(t, "total requests", counter.Description)
	assert.Equal(t, "1", counter.Unit)

	histogram := findMetric(rm, "latency")
	require.NotNil(t, histogram)

	dps := histogramDataPoints(t, histogram)
	require.Len(t, dps, 1)
	assert.Equal(t, []float64{0.5, 1, 2}, dps[0].Bounds)
}

func TestAttributesAfterInstrumentExists(t *testing.T) {
	rec, reader := newTestRecorder(t)

	rec.SetCounterAttribute("hits", metrics.Description("before"))
	rec.RegisterCounter(metrics.NewKey("hits")).Inc()

	// The instrument already exists; this must not retroactively alter it.
	rec.SetCounterAttribute("hits", metrics.Description("after"))
	rec.RegisterCounter(metrics.NewKey("hits", metrics.NewLabel("l", "v"))).Inc()

	rm := collect(t, reader)
	m := findMetric(rm, "hits")
	require.NotNil(t, m)
	assert.Equal(t, "before", m.Description)
}

func TestPrefixLayerOverRecorder(t *testing.T) {
	rec, reader := newTestRecorder(t)

	pipeline := layer.NewPrefixLayer("svc").Apply(rec)
	pipeline.RegisterCounter(metrics.NewKey("hits")).Inc()

	rm := collect(t, reader)
	assert.Nil(t, findMetric(rm, "hits"))
	assert.NotNil(t, findMetric(rm, "svc.hits"))
}
