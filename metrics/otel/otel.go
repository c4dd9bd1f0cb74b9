package otel

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/LerianStudio/lib-metrics/metrics"
)

// ErrNilMeter indicates that a nil OTEL meter was provided.
var ErrNilMeter = errors.New("metric meter cannot be nil")

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets the logger used for instrument-creation diagnostics. The
// default is no logging.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// Recorder is a metrics.Recorder backed by an OpenTelemetry meter.
//
// Instruments are created lazily on first registration of a name and cached;
// handles are cached per key identity, so registering the same key twice
// returns the same handle. Attributes (Description, Unit, Buckets) are
// honored when set before the first registration of their name; once an
// instrument exists, later attribute changes do not retroactively alter it.
//
// Instrument-creation failures are logged when a logger is configured and
// degrade to no-op handles; registration never fails from the caller's point
// of view.
type Recorder struct {
	meter  metric.Meter
	logger *zap.Logger

	mu sync.Mutex

	counterInstruments   map[string]metric.Float64Counter
	gaugeInstruments     map[string]metric.Float64Gauge
	histogramInstruments map[string]metric.Float64Histogram

	counters   map[string]metrics.Counter
	gauges     map[string]metrics.Gauge
	histograms map[string]metrics.Histogram

	counterMeta   map[metrics.KeyName]*instrumentMeta
	gaugeMeta     map[metrics.KeyName]*instrumentMeta
	histogramMeta map[metrics.KeyName]*instrumentMeta
}

var _ metrics.Recorder = (*Recorder)(nil)

// instrumentMeta accumulates attributes set for a name before its instrument
// is created.
type instrumentMeta struct {
	description string
	unit        string
	buckets     []float64
}

// New creates a Recorder over the given meter.
func New(meter metric.Meter, opts ...Option) (*Recorder, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}

	r := &Recorder{
		meter:                meter,
		counterInstruments:   make(map[string]metric.Float64Counter),
		gaugeInstruments:     make(map[string]metric.Float64Gauge),
		histogramInstruments: make(map[string]metric.Float64Histogram),
		counters:             make(map[string]metrics.Counter),
		gauges:               make(map[string]metrics.Gauge),
		histograms:           make(map[string]metrics.Histogram),
		counterMeta:          make(map[metrics.KeyName]*instrumentMeta),
		gaugeMeta:            make(map[metrics.KeyName]*instrumentMeta),
		histogramMeta:        make(map[metrics.KeyName]*instrumentMeta),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// SetCounterAttribute retains attr for counters named name. Honored on the
// first registration of that name.
func (r *Recorder) SetCounterAttribute(name metrics.KeyName, attr metrics.Attribute) {
	r.mu.Lock()
	defer r.mu.Unlock()

	applyAttribute(metaFor(r.counterMeta, name), attr)
}

// SetGaugeAttribute retains attr for gauges named name. Honored on the first
// registration of that name.
func (r *Recorder) SetGaugeAttribute(name metrics.KeyName, attr metrics.Attribute) {
	r.mu.Lock()
	defer r.mu.Unlock()

	applyAttribute(metaFor(r.gaugeMeta, name), attr)
}

// SetHistogramAttribute retains attr for histograms named name. Honored on
// the first registration of that name.
func (r *Recorder) SetHistogramAttribute(name metrics.KeyName, attr metrics.Attribute) {
	r.mu.Lock()
	defer r.mu.Unlock()

	applyAttribute(metaFor(r.histogramMeta, name), attr)
}

func metaFor(metas map[metrics.KeyName]*instrumentMeta, name metrics.KeyName) *instrumentMeta {
	if meta, ok := metas[name]; ok {
		return meta
	}

	meta := &instrumentMeta{}
	metas[name] = meta

	return meta
}

func applyAttribute(meta *instrumentMeta, attr metrics.Attribute) {
	switch a := attr.(type) {
	case metrics.Description:
		meta.description = string(a)
	case metrics.Unit:
		meta.unit = string(a)
	case metrics.Buckets:
		meta.buckets = []float64(a)
	}
}

// RegisterCounter returns the counter handle for key, creating the
// underlying instrument on the first registration of key's name.
func (r *Recorder) RegisterCounter(key metrics.Key) metrics.Counter {
	id := key.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if handle, ok := r.counters[id]; ok {
		return handle
	}

	instrument, ok := r.counterInstruments[key.Name()]
	if !ok {
		var err error

		instrument, err = r.meter.Float64Counter(key.Name(), counterOptions(r.counterMeta[metrics.KeyName(key.Name())])...)
		if err != nil {
			r.logInstrumentError("counter", key.Name(), err)

			return metrics.NopCounter()
		}

		r.counterInstruments[key.Name()] = instrument
	}

	handle := &otelCounter{counter: instrument, attrs: measurementOption(key)}
	r.counters[id] = handle

	return handle
}

// RegisterGauge returns the gauge handle for key, creating the underlying
// instrument on the first registration of key's name.
func (r *Recorder) RegisterGauge(key metrics.Key) metrics.Gauge {
	id := key.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if handle, ok := r.gauges[id]; ok {
		return handle
	}

	instrument, ok := r.gaugeInstruments[key.Name()]
	if !ok {
		var err error

		instrument, err = r.meter.Float64Gauge(key.Name(), gaugeOptions(r.gaugeMeta[metrics.KeyName(key.Name())])...)
		if err != nil {
			r.logInstrumentError("gauge", key.Name(), err)

			return metrics.NopGauge()
		}

		r.gaugeInstruments[key.Name()] = instrument
	}

	handle := &otelGauge{gauge: instrument, attrs: measurementOption(key)}
	r.gauges[id] = handle

	return handle
}

// RegisterHistogram returns the histogram handle for key, creating the
// underlying instrument on the first registration of key's name.
func (r *Recorder) RegisterHistogram(key metrics.Key) metrics.Histogram {
	id := key.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if handle, ok := r.histograms[id]; ok {
		return handle
	}

	instrument, ok := r.histogramInstruments[key.Name()]
	if !ok {
		var err error

		instrument, err = r.meter.Float64Histogram(key.Name(), histogramOptions(r.histogramMeta[metrics.KeyName(key.Name())])...)
		if err != nil {
			r.logInstrumentError("histogram", key.Name(), err)

			return metrics.NopHistogram()
		}

		r.histogramInstruments[key.Name()] = instrument
	}

	handle := &otelHistogram{histogram: instrument, attrs: measurementOption(key)}
	r.histograms[id] = handle

	return handle
}

func (r *Recorder) logInstrumentError(kind, name string, err error) {
	if r.logger == nil {
		return
	}

	r.logger.Error("failed to create instrument",
		zap.String("kind", kind),
		zap.String("metric_name", name),
		zap.Error(err),
	)
}

func counterOptions(meta *instrumentMeta) []metric.Float64CounterOption {
	if meta == nil {
		return nil
	}

	var opts []metric.Float64CounterOption
	if meta.description != "" {
		opts = append(opts, metric.WithDescription(meta.description))
	}

	if meta.unit != "" {
		opts = append(opts, metric.WithUnit(meta.unit))
	}

	return opts
}

func gaugeOptions(meta *instrumentMeta) []metric.Float64GaugeOption {
	if meta == nil {
		return nil
	}

	var opts []metric.Float64GaugeOption
	if meta.description != "" {
		opts = append(opts, metric.WithDescription(meta.description))
	}

	if meta.unit != "" {
		opts = append(opts, metric.WithUnit(meta.unit))
	}

	return opts
}

func histogramOptions(meta *instrumentMeta) []metric.Float64HistogramOption {
	if meta == nil {
		return nil
	}

	var opts []metric.Float64HistogramOption
	if meta.description != "" {
		opts = append(opts, metric.WithDescription(meta.description))
	}

	if meta.unit != "" {
		opts = append(opts, metric.WithUnit(meta.unit))
	}

	if meta.buckets != nil {
		opts = append(opts, metric.WithExplicitBucketBoundaries(meta.buckets...))
	}

	return opts
}

// measurementOption pre-builds the OTel attribute set carrying a key's
// labels, so each measurement reuses it without re-sorting.
func measurementOption(key metrics.Key) metric.MeasurementOption {
	labels := key.Labels()

	kvs := make([]attribute.KeyValue, len(labels))
	for i, label := range labels {
		kvs[i] = attribute.String(label.Key, label.Value)
	}

	return metric.WithAttributeSet(attribute.NewSet(kvs...))
}

type otelCounter struct {
	counter metric.Float64Counter
	attrs   metric.MeasurementOption
}

func (c *otelCounter) Inc() {
	c.Add(1)
}

func (c *otelCounter) Add(delta float64) {
	c.counter.Add(context.Background(), delta, c.attrs)
}

// otelGauge tracks the current value internally so Inc/Dec/Add work over the
// record-only OTel gauge instrument.
type otelGauge struct {
	gauge metric.Float64Gauge
	attrs metric.MeasurementOption

	mu    sync.Mutex
	value float64
}

func (g *otelGauge) Set(value float64) {
	g.mu.Lock()
	g.value = value
	current := g.value
	g.mu.Unlock()

	g.gauge.Record(context.Background(), current, g.attrs)
}

func (g *otelGauge) Inc() {
	g.Add(1)
}

func (g *otelGauge) Dec() {
	g.Add(-1)
}

func (g *otelGauge) Add(delta float64) {
	g.mu.Lock()
	g.value += delta
	current := g.value
	g.mu.Unlock()

	g.gauge.Record(context.Background(), current, g.attrs)
}

type otelHistogram struct {
	histogram metric.Float64Histogram
	attrs     metric.MeasurementOption
}

func (h *otelHistogram) Observe(value float64) {
	h.histogram.Record(context.Background(), value, h.attrs)
}
