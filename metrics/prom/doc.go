// Package prom provides a metrics.Recorder backed by a Prometheus
// registerer. Metric and label names are sanitized to Prometheus's charset
// on the way in; the facade-level names remain untouched.
package prom
