package metrics

import (
	"errors"
	"sync"
)

// ErrNilRecorder indicates that a nil recorder was passed to SetGlobal.
var ErrNilRecorder = errors.New("recorder cannot be nil")

// ErrRecorderAlreadySet indicates that SetGlobal was called after a global
// recorder had already been installed.
var ErrRecorderAlreadySet = errors.New("global recorder already installed")

// globalRecorder is the process-wide recorder. It is installed once during
// application startup; ResetGlobal exists for test isolation.
var (
	globalRecorder Recorder
	globalMu       sync.RWMutex
)

// SetGlobal installs r as the process-wide recorder. It should be called
// once during application startup, after the recording pipeline has been
// assembled. Subsequent calls fail with ErrRecorderAlreadySet.
func SetGlobal(r Recorder) error {
	if r == nil {
		return ErrNilRecorder
	}

	globalMu.Lock()
	defer globalMu.Unlock()

	if globalRecorder != nil {
		return ErrRecorderAlreadySet
	}

	globalRecorder = r

	return nil
}

// Global returns the installed recorder, or the no-op recorder when none has
// been installed. It never returns nil.
func Global() Recorder {
	globalMu.RLock()
	defer globalMu.RUnlock()

	if globalRecorder == nil {
		return nopRecorder{}
	}

	return globalRecorder
}

// ResetGlobal clears the installed recorder so SetGlobal can be called
// again. This is primarily intended for tests; in production the global
// recorder lives for the whole process.
func ResetGlobal() {
	globalMu.Lock()
	defer globalMu.Unlock()

	globalRecorder = nil
}

// SetCounterAttribute attaches attr to the counter class named name on the
// global recorder.
func SetCounterAttribute(name KeyName, attr Attribute) {
	Global().SetCounterAttribute(name, attr)
}

// SetGaugeAttribute attaches attr to the gauge class named name on the
// global recorder.
func SetGaugeAttribute(name KeyName, attr Attribute) {
	Global().SetGaugeAttribute(name, attr)
}

// SetHistogramAttribute attaches attr to the histogram class named name on
// the global recorder.
func SetHistogramAttribute(name KeyName, attr Attribute) {
	Global().SetHistogramAttribute(name, attr)
}

// RegisterCounter registers key with the global recorder and returns its
// counter handle.
func RegisterCounter(key Key) Counter {
	return Global().RegisterCounter(key)
}

// RegisterGauge registers key with the global recorder and returns its gauge
// handle.
func RegisterGauge(key Key) Gauge {
	return Global().RegisterGauge(key)
}

// RegisterHistogram registers key with the global recorder and returns its
// histogram handle.
func RegisterHistogram(key Key) Histogram {
	return Global().RegisterHistogram(key)
}
