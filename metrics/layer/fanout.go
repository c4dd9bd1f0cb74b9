package layer

import "github.com/LerianStudio/lib-metrics/metrics"

// Fanout broadcasts every operation to a list of recorders. Attribute
// operations are forwarded to each recorder; register operations register
// with each recorder and return a combined handle whose methods invoke the
// corresponding method on every underlying handle, in registration order.
//
// With zero recorders, registration returns no-op handles.
type Fanout struct {
	recorders []metrics.Recorder
}

var _ metrics.Recorder = (*Fanout)(nil)

// NewFanout creates a Fanout over the given recorders.
func NewFanout(recorders ...metrics.Recorder) *Fanout {
	copied := make([]metrics.Recorder, len(recorders))
	copy(copied, recorders)

	return &Fanout{recorders: copied}
}

// SetCounterAttribute forwards attr to every recorder.
func (f *Fanout) SetCounterAttribute(name metrics.KeyName, attr metrics.Attribute) {
	for _, r := range f.recorders {
		r.SetCounterAttribute(name, attr)
	}
}

// SetGaugeAttribute forwards attr to every recorder.
func (f *Fanout) SetGaugeAttribute(name metrics.KeyName, attr metrics.Attribute) {
	for _, r := range f.recorders {
		r.SetGaugeAttribute(name, attr)
	}
}

// SetHistogramAttribute forwards attr to every recorder.
func (f *Fanout) SetHistogramAttribute(name metrics.KeyName, attr metrics.Attribute) {
	for _, r := range f.recorders {
		r.SetHistogramAttribute(name, attr)
	}
}

// RegisterCounter registers key with every recorder and returns a counter
// that increments all of them.
func (f *Fanout) RegisterCounter(key metrics.Key) metrics.Counter {
	if len(f.recorders) == 0 {
		return metrics.NopCounter()
	}

	handles := make(fanoutCounter, len(f.recorders))
	for i, r := range f.recorders {
		handles[i] = r.RegisterCounter(key)
	}

	return handles
}

// RegisterGauge registers key with every recorder and returns a gauge that
// updates all of them.
func (f *Fanout) RegisterGauge(key metrics.Key) metrics.Gauge {
	if len(f.recorders) == 0 {
		return metrics.NopGauge()
	}

	handles := make(fanoutGauge, len(f.recorders))
	for i, r := range f.recorders {
		handles[i] = r.RegisterGauge(key)
	}

	return handles
}

// RegisterHistogram registers key with every recorder and returns a
// histogram that observes into all of them.
func (f *Fanout) RegisterHistogram(key metrics.Key) metrics.Histogram {
	if len(f.recorders) == 0 {
		return metrics.NopHistogram()
	}

	handles := make(fanoutHistogram, len(f.recorders))
	for i, r := range f.recorders {
		handles[i] = r.RegisterHistogram(key)
	}

	return handles
}

type fanoutCounter []metrics.Counter

func (c fanoutCounter) Inc() {
	for _, h := range c {
		h.Inc()
	}
}

func (c fanoutCounter) Add(delta float64) {
	for _, h := range c {
		h.Add(delta)
	}
}

type fanoutGauge []metrics.Gauge

func (g fanoutGauge) Set(value float64) {
	for _, h := range g {
		h.Set(value)
	}
}

func (g fanoutGauge) Inc() {
	for _, h := range g {
		h.Inc()
	}
}

func (g fanoutGauge) Dec() {
	for _, h := range g {
		h.Dec()
	}
}

func (g fanoutGauge) Add(delta float64) {
	for _, h := range g {
		h.Add(delta)
	}
}

type fanoutHistogram []metrics.Histogram

func (h fanoutHistogram) Observe(value float64) {
	for _, handle := range h {
		handle.Observe(value)
	}
}
