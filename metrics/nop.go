package metrics

type nopCounter struct{}

func (nopCounter) Inc()        {}
func (nopCounter) Add(float64) {}

type nopGauge struct{}

func (nopGauge) Set(float64) {}
func (nopGauge) Inc()        {}
func (nopGauge) Dec()        {}
func (nopGauge) Add(float64) {}

type nopHistogram struct{}

func (nopHistogram) Observe(float64) {}

// NopCounter returns a Counter that drops every update.
func NopCounter() Counter {
	return nopCounter{}
}

// NopGauge returns a Gauge that drops every update.
func NopGauge() Gauge {
	return nopGauge{}
}

// NopHistogram returns a Histogram that drops every observation.
func NopHistogram() Histogram {
	return nopHistogram{}
}

// nopRecorder drops every operation and hands back no-op handles.
type nopRecorder struct{}

var _ Recorder = nopRecorder{}

// NopRecorder returns a Recorder that drops every operation. It is safe for
// concurrent use and is the recorder Global falls back to when nothing has
// been installed.
func NopRecorder() Recorder {
	return nopRecorder{}
}

func (nopRecorder) SetCounterAttribute(KeyName, Attribute)   {}
func (nopRecorder) SetGaugeAttribute(KeyName, Attribute)     {}
func (nopRecorder) SetHistogramAttribute(KeyName, Attribute) {}

func (nopRecorder) RegisterCounter(Key) Counter {
	return nopCounter{}
}

func (nopRecorder) RegisterGauge(Key) Gauge {
	return nopGauge{}
}

func (nopRecorder) RegisterHistogram(Key) Histogram {
	return nopHistogram{}
}
