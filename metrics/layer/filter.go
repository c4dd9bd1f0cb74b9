package layer

import (
	"strings"

	"github.com/LerianStudio/lib-metrics/metrics"
)

// Filter drops metrics whose key name contains any of a set of substring
// patterns. Matching register operations return no-op handles without
// reaching the inner recorder; matching attribute operations are dropped.
// Non-matching operations pass through with their names unmodified.
//
// Filtering consults the name each operation arrives with, so composition
// order with a prefix layer matters: a filter below a prefix layer sees
// prefixed names, a filter above it sees the originals.
type Filter struct {
	patterns []string
	inner    metrics.Recorder
}

var _ metrics.Recorder = (*Filter)(nil)

func (f *Filter) matches(name string) bool {
	for _, pattern := range f.patterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}

	return false
}

// SetCounterAttribute forwards attr unless the counter name matches a
// pattern.
func (f *Filter) SetCounterAttribute(name metrics.KeyName, attr metrics.Attribute) {
	if f.matches(string(name)) {
		return
	}

	f.inner.SetCounterAttribute(name, attr)
}

// SetGaugeAttribute forwards attr unless the gauge name matches a pattern.
func (f *Filter) SetGaugeAttribute(name metrics.KeyName, attr metrics.Attribute) {
	if f.matches(string(name)) {
		return
	}

	f.inner.SetGaugeAttribute(name, attr)
}

// SetHistogramAttribute forwards attr unless the histogram name matches a
// pattern.
func (f *Filter) SetHistogramAttribute(name metrics.KeyName, attr metrics.Attribute) {
	if f.matches(string(name)) {
		return
	}

	f.inner.SetHistogramAttribute(name, attr)
}

// RegisterCounter forwards the registration, or returns a no-op handle when
// the key name matches a pattern.
func (f *Filter) RegisterCounter(key metrics.Key) metrics.Counter {
	if f.matches(key.Name()) {
		return metrics.NopCounter()
	}

	return f.inner.RegisterCounter(key)
}

// RegisterGauge forwards the registration, or returns a no-op handle when
// the key name matches a pattern.
func (f *Filter) RegisterGauge(key metrics.Key) metrics.Gauge {
	if f.matches(key.Name()) {
		return metrics.NopGauge()
	}

	return f.inner.RegisterGauge(key)
}

// RegisterHistogram forwards the registration, or returns a no-op handle
// when the key name matches a pattern.
func (f *Filter) RegisterHistogram(key metrics.Key) metrics.Histogram {
	if f.matches(key.Name()) {
		return metrics.NopHistogram()
	}

	return f.inner.RegisterHistogram(key)
}

// FilterLayer builds Filter decorators carrying a fixed pattern set.
type FilterLayer struct {
	patterns []string
}

var _ Layer = (*FilterLayer)(nil)

// NewFilterLayer creates a FilterLayer dropping every metric whose name
// contains any of the given substring patterns. An empty pattern set matches
// nothing, making the layer a pure pass-through.
func NewFilterLayer(patterns ...string) *FilterLayer {
	copied := make([]string, len(patterns))
	copy(copied, patterns)

	return &FilterLayer{patterns: copied}
}

// Apply wraps inner in a Filter carrying the layer's patterns.
func (l *FilterLayer) Apply(inner metrics.Recorder) metrics.Recorder {
	return &Filter{patterns: l.patterns, inner: inner}
}
