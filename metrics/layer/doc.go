// Package layer provides decorators that sit between a caller and a
// metrics.Recorder: a prefixing layer for namespacing keys, a filtering
// layer for dropping unwanted series, and a fanout recorder that broadcasts
// to several backends.
//
// Layers compose with Stack; the assembled pipeline is itself a
// metrics.Recorder and can be installed with metrics.SetGlobal.
package layer
