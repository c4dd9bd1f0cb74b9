package metricstest

import (
	"sync"

	"github.com/LerianStudio/lib-metrics/metrics"
)

// Op identifies a recorder operation in a recorded trace.
type Op string

// The six recorder operations.
const (
	OpSetCounterAttribute   Op = "SetCounterAttribute"
	OpSetGaugeAttribute     Op = "SetGaugeAttribute"
	OpSetHistogramAttribute Op = "SetHistogramAttribute"
	OpRegisterCounter       Op = "RegisterCounter"
	OpRegisterGauge         Op = "RegisterGauge"
	OpRegisterHistogram     Op = "RegisterHistogram"
)

// Operation is a single recorded recorder call. Register operations carry
// Key; attribute operations carry Name and Attribute.
type Operation struct {
	Op        Op
	Key       metrics.Key
	Name      metrics.KeyName
	Attribute metrics.Attribute
}

// Recorder is a metrics.Recorder that records every operation it receives,
// in order, and returns capturing handles. Handles are stable per key
// identity: registering the same key twice returns the same handle.
//
// Safe for concurrent use.
type Recorder struct {
	mu         sync.Mutex
	operations []Operation
	counters   map[string]*Counter
	gauges     map[string]*Gauge
	histograms map[string]*Histogram
}

var _ metrics.Recorder = (*Recorder)(nil)

// NewRecorder creates an empty capturing recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		counters:   make(map[string]*Counter),
		gauges:     make(map[string]*Gauge),
		histograms: make(map[string]*Histogram),
	}
}

// Operations returns a copy of every operation recorded so far, in arrival
// order.
func (r *Recorder) Operations() []Operation {
	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make([]Operation, len(r.operations))
	copy(ops, r.operations)

	return ops
}

// Reset clears the recorded operations and all handles.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.operations = nil
	r.counters = make(map[string]*Counter)
	r.gauges = make(map[string]*Gauge)
	r.histograms = make(map[string]*Histogram)
}

// Counter returns the handle registered for key, or nil if that key never
// registered a counter.
func (r *Recorder) Counter(key metrics.Key) *Counter {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.counters[key.String()]
}

// Gauge returns the handle registered for key, or nil if that key never
// registered a gauge.
func (r *Recorder) Gauge(key metrics.Key) *Gauge {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.gauges[key.String()]
}

// Histogram returns the handle registered for key, or nil if that key never
// registered a histogram.
func (r *Recorder) Histogram(key metrics.Key) *Histogram {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.histograms[key.String()]
}

// SetCounterAttribute records the call.
func (r *Recorder) SetCounterAttribute(name metrics.KeyName, attr metrics.Attribute) {
	r.record(Operation{Op: OpSetCounterAttribute, Name: name, Attribute: attr})
}

// SetGaugeAttribute records the call.
func (r *Recorder) SetGaugeAttribute(name metrics.KeyName, attr metrics.Attribute) {
	r.record(Operation{Op: OpSetGaugeAttribute, Name: name, Attribute: attr})
}

// SetHistogramAttribute records the call.
func (r *Recorder) SetHistogramAttribute(name metrics.KeyName, attr metrics.Attribute) {
	r.record(Operation{Op: OpSetHistogramAttribute, Name: name, Attribute: attr})
}

// RegisterCounter records the call and returns the stable capturing handle
// for key.
func (r *Recorder) RegisterCounter(key metrics.Key) metrics.Counter {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.operations = append(r.operations, Operation{Op: OpRegisterCounter, Key: key})

	id := key.String()
	if _, ok := r.counters[id]; !ok {
		r.counters[id] = &Counter{}
	}

	return r.counters[id]
}

// RegisterGauge records the call and returns the stable capturing handle for
// key.
func (r *Recorder) RegisterGauge(key metrics.Key) metrics.Gauge {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.operations = append(r.operations, Operation{Op: OpRegisterGauge, Key: key})

	id := key.String()
	if _, ok := r.gauges[id]; !ok {
		r.gauges[id] = &Gauge{}
	}

	return r.gauges[id]
}

// RegisterHistogram records the call and returns the stable capturing handle
// for key.
func (r *Recorder) RegisterHistogram(key metrics.Key) metrics.Histogram {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.operations = append(r.operations, Operation{Op: OpRegisterHistogram, Key: key})

	id := key.String()
	if _, ok := r.histograms[id]; !ok {
		r.histograms[id] = &Histogram{}
	}

	return r.histograms[id]
}

func (r *Recorder) record(op Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.operations = append(r.operations, op)
}

// Counter is a capturing counter handle.
type Counter struct {
	mu    sync.Mutex
	value float64
}

var _ metrics.Counter = (*Counter)(nil)

// Inc increments the captured value by one.
func (c *Counter) Inc() {
	c.Add(1)
}

// Add increments the captured value by delta.
func (c *Counter) Add(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value += delta
}

// Value returns the captured counter value.
func (c *Counter) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.value
}

// Gauge is a capturing gauge handle.
type Gauge struct {
	mu    sync.Mutex
	value float64
}

var _ metrics.Gauge = (*Gauge)(nil)

// Set replaces the captured value.
func (g *Gauge) Set(value float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.value = value
}

// Inc increments the captured value by one.
func (g *Gauge) Inc() {
	g.Add(1)
}

// Dec decrements the captured value by one.
func (g *Gauge) Dec() {
	g.Add(-1)
}

// Add adjusts the captured value by delta.
func (g *Gauge) Add(delta float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.value += delta
}

// Value returns the captured gauge value.
func (g *Gauge) Value() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.value
}

// Histogram is a capturing histogram handle.
type Histogram struct {
	mu           sync.Mutex
	observations []float64
}

var _ metrics.Histogram = (*Histogram)(nil)

// Observe appends value to the captured observations.
func (h *Histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.observations = append(h.observations, value)
}

// Observations returns a copy of every captured observation, in order.
func (h *Histogram) Observations() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	obs := make([]float64, len(h.observations))
	copy(obs, h.observations)

	return obs
}
