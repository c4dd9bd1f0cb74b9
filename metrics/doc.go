// Package metrics defines a small metrics-recording facade: counters,
// gauges, and histograms registered through the Recorder capability set.
//
// The package carries no backend of its own. Concrete recorders live in the
// subpackages (otel, prom, inmem), decorators that rewrite or route
// operations live in the layer subpackage, and a capturing test double lives
// in metricstest. A process typically assembles a pipeline once at startup
// and installs it with SetGlobal.
package metrics
