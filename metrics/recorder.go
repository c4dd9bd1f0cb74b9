package metrics

// Counter is a handle to a monotonically increasing metric series.
type Counter interface {
	// Inc increments the counter by one.
	Inc()
	// Add increments the counter by delta. Delta must not be negative.
	Add(delta float64)
}

// Gauge is a handle to a metric series holding a single current value.
type Gauge interface {
	// Set replaces the gauge's current value.
	Set(value float64)
	// Inc increments the gauge by one.
	Inc()
	// Dec decrements the gauge by one.
	Dec()
	// Add adjusts the gauge by delta, which may be negative.
	Add(delta float64)
}

// Histogram is a handle to a metric series recording a distribution of
// observed values.
type Histogram interface {
	// Observe records a single value into the distribution.
	Observe(value float64)
}

// Recorder is the capability set every metrics backend implements.
//
// The attribute-setting operations attach metadata to a metric class by bare
// name; the register operations create or look up a handle for a specific
// labeled series. Register operations have no error path: a backend that
// cannot create an instrument degrades to a no-op handle.
//
// Every operation is a synchronous, non-blocking transformation or
// registration; no operation takes a context or returns an error.
type Recorder interface {
	SetCounterAttribute(name KeyName, attr Attribute)
	SetGaugeAttribute(name KeyName, attr Attribute)
	SetHistogramAttribute(name KeyName, attr Attribute)
	RegisterCounter(key Key) Counter
	RegisterGauge(key Key) Gauge
	RegisterHistogram(key Key) Histogram
}
