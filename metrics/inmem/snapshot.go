package inmem

import (
	"sort"

	"github.com/LerianStudio/lib-metrics/metrics"
)

// CounterSample is the point-in-time value of one counter series.
type CounterSample struct {
	Key   metrics.Key
	Value float64
}

// GaugeSample is the point-in-time value of one gauge series.
type GaugeSample struct {
	Key   metrics.Key
	Value float64
}

// HistogramSample is the point-in-time observation list of one histogram
// series.
type HistogramSample struct {
	Key          metrics.Key
	Observations []float64
}

// Snapshot is a point-in-time copy of every series held by a Recorder. Each
// slice is ordered by the canonical key string, so two snapshots of the same
// state compare equal.
type Snapshot struct {
	Counters   []CounterSample
	Gauges     []GaugeSample
	Histograms []HistogramSample
}

// Snapshot copies the recorder's current state. The copy is detached:
// updates after the call do not alter it.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := Snapshot{
		Counters:   make([]CounterSample, 0, len(r.counters)),
		Gauges:     make([]GaugeSample, 0, len(r.gauges)),
		Histograms: make([]HistogramSample, 0, len(r.histograms)),
	}

	for _, c := range r.counters {
		snap.Counters = append(snap.Counters, CounterSample{Key: c.key, Value: c.load()})
	}

	for _, g := range r.gauges {
		snap.Gauges = append(snap.Gauges, GaugeSample{Key: g.key, Value: g.load()})
	}

	for _, h := range r.histograms {
		snap.Histograms = append(snap.Histograms, HistogramSample{Key: h.key, Observations: h.load()})
	}

	sort.Slice(snap.Counters, func(i, j int) bool {
		return snap.Counters[i].Key.String() < snap.Counters[j].Key.String()
	})
	sort.Slice(snap.Gauges, func(i, j int) bool {
		return snap.Gauges[i].Key.String() < snap.Gauges[j].Key.String()
	})
	sort.Slice(snap.Histograms, func(i, j int) bool {
		return snap.Histograms[i].Key.String() < snap.Histograms[j].Key.String()
	})

	return snap
}
