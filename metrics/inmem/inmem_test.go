package inmem

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LerianStudio/lib-metrics/metrics"
)

func TestRegisterDeduplicatesByKeyIdentity(t *testing.T) {
	rec := New()

	key := metrics.NewKey("hits", metrics.NewLabel("method", "GET"))

	first := rec.RegisterCounter(key)
	second := rec.RegisterCounter(key)
	assert.Same(t, first, second)

	// Both handles accumulate into the same series.
	first.Inc()
	second.Add(2)

	snap := rec.Snapshot()
	require.Len(t, snap.Counters, 1)
	assert.Equal(t, float64(3), snap.Counters[0].Value)
}

func TestDifferentLabelSetsAreDifferentSeries(t *testing.T) {
	rec := New()

	get := rec.RegisterCounter(metrics.NewKey("hits", metrics.NewLabel("method", "GET")))
	put := rec.RegisterCounter(metrics.NewKey("hits", metrics.NewLabel("method", "PUT")))

	get.Inc()
	put.Add(5)

	snap := rec.Snapshot()
	require.Len(t, snap.Counters, 2)

	// Sorted by canonical key string: GET before PUT.
	assert.Equal(t, float64(1), snap.Counters[0].Value)
	assert.Equal(t, float64(5), snap.Counters[1].Value)
}

func TestGaugeArithmetic(t *testing.T) {
	rec := New()
	gauge := rec.RegisterGauge(metrics.NewKey("pool_size"))

	gauge.Set(10)
	gauge.Inc()
	gauge.Dec()
	gauge.Add(-4)

	snap := rec.Snapshot()
	require.Len(t, snap.Gauges, 1)
	assert.Equal(t, float64(6), snap.Gauges[0].Value)
}

func TestHistogramKeepsEveryObservation(t *testing.T) {
	rec := New()
	histogram := rec.RegisterHistogram(metrics.NewKey("latency"))

	histogram.Observe(0.1)
	histogram.Observe(0.2)
	histogram.Observe(0.1)

	snap := rec.Snapshot()
	require.Len(t, snap.Histograms, 1)
	assert.Equal(t, []float64{0.1, 0.2, 0.1}, snap.Histograms[0].Observations)
}

func TestSnapshotIsDetached(t *testing.T) {
	rec := New()
	counter := rec.RegisterCounter(metrics.NewKey("hits"))
	histogram := rec.RegisterHistogram(metrics.NewKey("latency"))

	counter.Inc()
	histogram.Observe(1)

	snap := rec.Snapshot()

	counter.Inc()
	histogram.Observe(2)

	assert.Equal(t, float64(1), snap.Counters[0].Value)
	assert.Equal(t, []float64{1}, snap.Histograms[0].Observations)
}

func TestSnapshotDeterministicOrder(t *testing.T) {
	rec := New()

	names := []string{"zeta", "alpha", "mid"}
	for _, name := range names {
		rec.RegisterCounter(metrics.NewKey(name)).Inc()
	}

	snap := rec.Snapshot()
	require.Len(t, snap.Counters, 3)
	assert.Equal(t, "alpha", snap.Counters[0].Key.Name())
	assert.Equal(t, "mid", snap.Counters[1].Key.Name())
	assert.Equal(t, "zeta", snap.Counters[2].Key.Name())
}

func TestAttributesRetainedPerNameAndKind(t *testing.T) {
	rec := New()

	rec.SetCounterAttribute("hits", metrics.Description("total hits"))
	rec.SetCounterAttribute("hits", metrics.Unit("1"))
	rec.SetGaugeAttribute("hits", metrics.Description("gauge hits"))

	assert.Equal(t,
		[]metrics.Attribute{metrics.Description("total hits"), metrics.Unit("1")},
		rec.CounterAttributes("hits"),
	)
	assert.Equal(t,
		[]metrics.Attribute{metrics.Description("gauge hits")},
		rec.GaugeAttributes("hits"),
	)
	assert.Nil(t, rec.HistogramAttributes("hits"))
}

func TestAttributeCopiesAreDetached(t *testing.T) {
	rec := New()
	rec.SetHistogramAttribute("latency", metrics.Buckets{1, 2})

	attrs := rec.HistogramAttributes("latency")
	require.Len(t, attrs, 1)

	attrs[0] = metrics.Description("overwritten")

	assert.Equal(t, metrics.Buckets{1, 2}, rec.HistogramAttributes("latency")[0])
}

func TestConcurrentRegistrationAndUpdates(t *testing.T) {
	rec := New()

	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				rec.RegisterCounter(metrics.NewKey("hits")).Inc()
				rec.RegisterGauge(metrics.NewKey("depth")).Set(float64(j))
				rec.RegisterHistogram(metrics.NewKey("latency")).Observe(float64(j))
			}
		}()
	}

	wg.Wait()

	snap := rec.Snapshot()
	require.Len(t, snap.Counters, 1)
	assert.Equal(t, float64(1600), snap.Counters[0].Value)
	require.Len(t, snap.Histograms, 1)
	assert.Len(t, snap.Histograms[0].Observations, 1600)
}
