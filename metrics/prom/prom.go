package prom

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/LerianStudio/lib-metrics/metrics"
)

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets the logger used for registration diagnostics. The default
// is no logging.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// Recorder is a metrics.Recorder backed by a Prometheus registerer.
//
// Registered series become Prometheus collectors with the key's labels as
// const labels; the collectors themselves are the handles, since their
// method sets already satisfy the facade handle interfaces. Handles are
// cached per key identity.
//
// A Description attribute set before the first registration of a name
// becomes the Help string; a Buckets attribute set before the first
// histogram registration overrides prometheus.DefBuckets; Unit has no
// Prometheus equivalent and is ignored.
//
// Names are sanitized to Prometheus's charset: invalid runes become '_' and
// a leading digit gains a '_' prefix. Dots produced by a prefix layer become
// underscores. Safe for concurrent use.
type Recorder struct {
	registerer prometheus.Registerer
	logger     *zap.Logger

	mu sync.Mutex

	counters   map[string]metrics.Counter
	gauges     map[string]metrics.Gauge
	histograms map[string]metrics.Histogram

	counterHelp      map[metrics.KeyName]string
	gaugeHelp        map[metrics.KeyName]string
	histogramHelp    map[metrics.KeyName]string
	histogramBuckets map[metrics.KeyName][]float64
}

var _ metrics.Recorder = (*Recorder)(nil)

// New creates a Recorder registering collectors with reg. A nil registerer
// falls back to prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, opts ...Option) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		registerer:       reg,
		counters:         make(map[string]metrics.Counter),
		gauges:           make(map[string]metrics.Gauge),
		histograms:       make(map[string]metrics.Histogram),
		counterHelp:      make(map[metrics.KeyName]string),
		gaugeHelp:        make(map[metrics.KeyName]string),
		histogramHelp:    make(map[metrics.KeyName]string),
		histogramBuckets: make(map[metrics.KeyName][]float64),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// SetCounterAttribute retains a Description as the Help string for counters
// named name. Other attributes are ignored.
func (r *Recorder) SetCounterAttribute(name metrics.KeyName, attr metrics.Attribute) {
	if desc, ok := attr.(metrics.Description); ok {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.counterHelp[name] = string(desc)
	}
}

// SetGaugeAttribute retains a Description as the Help string for gauges
// named name. Other attributes are ignored.
func (r *Recorder) SetGaugeAttribute(name metrics.KeyName, attr metrics.Attribute) {
	if desc, ok := attr.(metrics.Description); ok {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.gaugeHelp[name] = string(desc)
	}
}

// SetHistogramAttribute retains a Description as the Help string and Buckets
// as the bucket boundaries for histograms named name. Other attributes are
// ignored.
func (r *Recorder) SetHistogramAttribute(name metrics.KeyName, attr metrics.Attribute) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch a := attr.(type) {
	case metrics.Description:
		r.histogramHelp[name] = string(a)
	case metrics.Buckets:
		r.histogramBuckets[name] = []float64(a)
	}
}

// RegisterCounter returns the counter for key, registering a Prometheus
// counter on first registration.
func (r *Recorder) RegisterCounter(key metrics.Key) metrics.Counter {
	id := key.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if handle, ok := r.counters[id]; ok {
		return handle
	}

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        sanitizeMetricName(key.Name()),
		Help:        r.counterHelp[metrics.KeyName(key.Name())],
		ConstLabels: constLabels(key),
	})

	registered, ok := r.register(counter, key)
	if !ok {
		return metrics.NopCounter()
	}

	handle, ok := registered.(prometheus.Counter)
	if !ok {
		r.logRegistrationError(key, errors.New("existing collector is not a counter"))

		return metrics.NopCounter()
	}

	r.counters[id] = handle

	return handle
}

// RegisterGauge returns the gauge for key, registering a Prometheus gauge on
// first registration.
func (r *Recorder) RegisterGauge(key metrics.Key) metrics.Gauge {
	id := key.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if handle, ok := r.gauges[id]; ok {
		return handle
	}

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        sanitizeMetricName(key.Name()),
		Help:        r.gaugeHelp[metrics.KeyName(key.Name())],
		ConstLabels: constLabels(key),
	})

	registered, ok := r.register(gauge, key)
	if !ok {
		return metrics.NopGauge()
	}

	handle, ok := registered.(prometheus.Gauge)
	if !ok {
		r.logRegistrationError(key, errors.New("existing collector is not a gauge"))

		return metrics.NopGauge()
	}

	r.gauges[id] = handle

	return handle
}

// RegisterHistogram returns the histogram for key, registering a Prometheus
// histogram on first registration.
func (r *Recorder) RegisterHistogram(key metrics.Key) metrics.Histogram {
	id := key.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if handle, ok := r.histograms[id]; ok {
		return handle
	}

	buckets := r.histogramBuckets[metrics.KeyName(key.Name())]
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}

	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        sanitizeMetricName(key.Name()),
		Help:        r.histogramHelp[metrics.KeyName(key.Name())],
		ConstLabels: constLabels(key),
		Buckets:     buckets,
	})

	registered, ok := r.register(histogram, key)
	if !ok {
		return metrics.NopHistogram()
	}

	handle, ok := registered.(prometheus.Histogram)
	if !ok {
		r.logRegistrationError(key, errors.New("existing collector is not a histogram"))

		return metrics.NopHistogram()
	}

	r.histograms[id] = handle

	return handle
}

// register registers the collector, resolving AlreadyRegisteredError to the
// existing collector. Any other failure is logged and reported as not ok.
func (r *Recorder) register(collector prometheus.Collector, key metrics.Key) (prometheus.Collector, bool) {
	err := r.registerer.Register(collector)
	if err == nil {
		return collector, true
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		return are.ExistingCollector, true
	}

	r.logRegistrationError(key, err)

	return nil, false
}

func (r *Recorder) logRegistrationError(key metrics.Key, err error) {
	if r.logger == nil {
		return
	}

	r.logger.Error("failed to register collector",
		zap.String("metric_name", key.Name()),
		zap.Error(err),
	)
}

// constLabels converts a key's labels to Prometheus const labels, sanitizing
// the label names.
func constLabels(key metrics.Key) prometheus.Labels {
	labels := key.Labels()
	if len(labels) == 0 {
		return nil
	}

	out := make(prometheus.Labels, len(labels))
	for _, label := range labels {
		out[sanitizeLabelName(label.Key)] = label.Value
	}

	return out
}
