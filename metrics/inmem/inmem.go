package inmem

import (
	"sync"

	"github.com/LerianStudio/lib-metrics/metrics"
)

// Recorder is an in-memory metrics backend. Registration deduplicates by key
// identity: registering the same key twice returns the same handle, and both
// callers accumulate into the same series.
//
// Counters hold a running sum, gauges hold their latest value, and
// histograms keep every observation. Safe for concurrent use.
type Recorder struct {
	mu         sync.RWMutex
	counters   map[string]*counter
	gauges     map[string]*gauge
	histograms map[string]*histogram
	attributes map[attrKind]map[metrics.KeyName][]metrics.Attribute
}

var _ metrics.Recorder = (*Recorder)(nil)

type attrKind uint8

const (
	attrCounter attrKind = iota
	attrGauge
	attrHistogram
)

// New creates an empty in-memory recorder.
func New() *Recorder {
	return &Recorder{
		counters:   make(map[string]*counter),
		gauges:     make(map[string]*gauge),
		histograms: make(map[string]*histogram),
		attributes: map[attrKind]map[metrics.KeyName][]metrics.Attribute{
			attrCounter:   make(map[metrics.KeyName][]metrics.Attribute),
			attrGauge:     make(map[metrics.KeyName][]metrics.Attribute),
			attrHistogram: make(map[metrics.KeyName][]metrics.Attribute),
		},
	}
}

// SetCounterAttribute retains attr for the counter class named name.
func (r *Recorder) SetCounterAttribute(name metrics.KeyName, attr metrics.Attribute) {
	r.appendAttribute(attrCounter, name, attr)
}

// SetGaugeAttribute retains attr for the gauge class named name.
func (r *Recorder) SetGaugeAttribute(name metrics.KeyName, attr metrics.Attribute) {
	r.appendAttribute(attrGauge, name, attr)
}

// SetHistogramAttribute retains attr for the histogram class named name.
func (r *Recorder) SetHistogramAttribute(name metrics.KeyName, attr metrics.Attribute) {
	r.appendAttribute(attrHistogram, name, attr)
}

func (r *Recorder) appendAttribute(kind attrKind, name metrics.KeyName, attr metrics.Attribute) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attributes[kind][name] = append(r.attributes[kind][name], attr)
}

// CounterAttributes returns a copy of the attributes retained for the
// counter class named name, in arrival order.
func (r *Recorder) CounterAttributes(name metrics.KeyName) []metrics.Attribute {
	return r.copyAttributes(attrCounter, name)
}

// GaugeAttributes returns a copy of the attributes retained for the gauge
// class named name, in arrival order.
func (r *Recorder) GaugeAttributes(name metrics.KeyName) []metrics.Attribute {
	return r.copyAttributes(attrGauge, name)
}

// HistogramAttributes returns a copy of the attributes retained for the
// histogram class named name, in arrival order.
func (r *Recorder) HistogramAttributes(name metrics.KeyName) []metrics.Attribute {
	return r.copyAttributes(attrHistogram, name)
}

func (r *Recorder) copyAttributes(kind attrKind, name metrics.KeyName) []metrics.Attribute {
	r.mu.RLock()
	defer r.mu.RUnlock()

	attrs := r.attributes[kind][name]
	if len(attrs) == 0 {
		return nil
	}

	copied := make([]metrics.Attribute, len(attrs))
	copy(copied, attrs)

	return copied
}

// RegisterCounter returns the accumulating counter for key, creating it on
// first registration.
func (r *Recorder) RegisterCounter(key metrics.Key) metrics.Counter {
	id := key.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.counters[id]; ok {
		return c
	}

	c := &counter{key: key}
	r.counters[id] = c

	return c
}

// RegisterGauge returns the gauge for key, creating it on first
// registration.
func (r *Recorder) RegisterGauge(key metrics.Key) metrics.Gauge {
	id := key.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.gauges[id]; ok {
		return g
	}

	g := &gauge{key: key}
	r.gauges[id] = g

	return g
}

// RegisterHistogram returns the histogram for key, creating it on first
// registration.
func (r *Recorder) RegisterHistogram(key metrics.Key) metrics.Histogram {
	id := key.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.histograms[id]; ok {
		return h
	}

	h := &histogram{key: key}
	r.histograms[id] = h

	return h
}

type counter struct {
	key   metrics.Key
	mu    sync.Mutex
	value float64
}

func (c *counter) Inc() { c.Add(1) }

func (c *counter) Add(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value += delta
}

func (c *counter) load() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.value
}

type gauge struct {
	key   metrics.Key
	mu    sync.Mutex
	value float64
}

func (g *gauge) Set(value float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.value = value
}

func (g *gauge) Inc() { g.Add(1) }
func (g *gauge) Dec() { g.Add(-1) }

func (g *gauge) Add(delta float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.value += delta
}

func (g *gauge) load() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.value
}

type histogram struct {
	key          metrics.Key
	mu           sync.Mutex
	observations []float64
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.observations = append(h.observations, value)
}

func (h *histogram) load() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	copied := make([]float64, len(h.observations))
	copy(copied, h.observations)

	return copied
}
