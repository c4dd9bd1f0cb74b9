package layer

import "github.com/LerianStudio/lib-metrics/metrics"

// Layer wraps a recorder in a decorator. A layer holds configuration only;
// Apply may be called any number of times, each call producing an
// independent decorator around the given inner recorder.
type Layer interface {
	Apply(inner metrics.Recorder) metrics.Recorder
}

// Stack composes layers into a single Layer. Apply folds the inner recorder
// through the layers in the order given, so the first layer is innermost
// (closest to the wrapped recorder) and the last is outermost (first to see
// each operation).
func Stack(layers ...Layer) Layer {
	copied := make(stack, len(layers))
	copy(copied, layers)

	return copied
}

type stack []Layer

func (s stack) Apply(inner metrics.Recorder) metrics.Recorder {
	out := inner
	for _, l := range s {
		out = l.Apply(out)
	}

	return out
}
