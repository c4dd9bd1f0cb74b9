// Package inmem provides an in-memory metrics.Recorder that accumulates
// every series in process memory and exposes point-in-time snapshots. It is
// intended for tests, debugging, and local inspection; nothing is exported
// anywhere.
package inmem
