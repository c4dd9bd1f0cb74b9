// Package otel provides a metrics.Recorder backed by an OpenTelemetry
// meter. Registered series become Float64 instruments with the key's labels
// carried as an OTel attribute set; Description, Unit, and Buckets
// attributes map onto the corresponding instrument options.
package otel
