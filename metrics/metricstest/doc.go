// Package metricstest provides a capturing metrics.Recorder for tests: it
// records every operation in arrival order and hands out stable handles that
// remember the values pushed through them.
package metricstest
