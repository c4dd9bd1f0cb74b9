package layer

import (
	"strings"

	"github.com/LerianStudio/lib-metrics/metrics"
)

// Prefix applies a fixed prefix to every metric key before forwarding the
// operation to the wrapped recorder.
//
// Keys are rewritten in the format `<prefix>.<remaining>`; labels, attributes,
// and returned handles pass through untouched. The rewrite is applied exactly
// once per call and is never cached. The prefix is not validated: a prefix
// ending in '.' or a name already containing '.' produces doubled or embedded
// separators, and that is the name the inner recorder sees.
//
// Prefix holds no mutable state, so it is safe for concurrent use whenever
// the inner recorder is.
type Prefix struct {
	prefix string
	inner  metrics.Recorder
}

var _ metrics.Recorder = (*Prefix)(nil)

// NewPrefix wraps inner so that every key it receives carries the given
// prefix.
func NewPrefix(prefix string, inner metrics.Recorder) *Prefix {
	return &Prefix{prefix: prefix, inner: inner}
}

// rewrite builds `<prefix>.<name>` in a buffer sized once up front.
func (p *Prefix) rewrite(name string) string {
	var sb strings.Builder

	sb.Grow(len(p.prefix) + 1 + len(name))
	sb.WriteString(p.prefix)
	sb.WriteByte('.')
	sb.WriteString(name)

	return sb.String()
}

func (p *Prefix) prefixKey(key metrics.Key) metrics.Key {
	return key.WithName(p.rewrite(key.Name()))
}

func (p *Prefix) prefixKeyName(name metrics.KeyName) metrics.KeyName {
	return metrics.KeyName(p.rewrite(string(name)))
}

// SetCounterAttribute forwards attr under the prefixed counter name.
func (p *Prefix) SetCounterAttribute(name metrics.KeyName, attr metrics.Attribute) {
	p.inner.SetCounterAttribute(p.prefixKeyName(name), attr)
}

// SetGaugeAttribute forwards attr under the prefixed gauge name.
func (p *Prefix) SetGaugeAttribute(name metrics.KeyName, attr metrics.Attribute) {
	p.inner.SetGaugeAttribute(p.prefixKeyName(name), attr)
}

// SetHistogramAttribute forwards attr under the prefixed histogram name.
func (p *Prefix) SetHistogramAttribute(name metrics.KeyName, attr metrics.Attribute) {
	p.inner.SetHistogramAttribute(p.prefixKeyName(name), attr)
}

// RegisterCounter registers the prefixed key with the inner recorder and
// returns the inner recorder's handle unchanged.
func (p *Prefix) RegisterCounter(key metrics.Key) metrics.Counter {
	return p.inner.RegisterCounter(p.prefixKey(key))
}

// RegisterGauge registers the prefixed key with the inner recorder and
// returns the inner recorder's handle unchanged.
func (p *Prefix) RegisterGauge(key metrics.Key) metrics.Gauge {
	return p.inner.RegisterGauge(p.prefixKey(key))
}

// RegisterHistogram registers the prefixed key with the inner recorder and
// returns the inner recorder's handle unchanged.
func (p *Prefix) RegisterHistogram(key metrics.Key) metrics.Histogram {
	return p.inner.RegisterHistogram(p.prefixKey(key))
}

// PrefixLayer builds Prefix decorators carrying a fixed prefix.
//
// More information on the behavior of the decorator can be found on
// [Prefix].
type PrefixLayer struct {
	prefix string
}

var _ Layer = (*PrefixLayer)(nil)

// NewPrefixLayer creates a PrefixLayer for the given prefix. Any prefix text
// is accepted, including the empty string; no validation is performed.
func NewPrefixLayer(prefix string) *PrefixLayer {
	return &PrefixLayer{prefix: prefix}
}

// Apply wraps inner in a Prefix carrying the layer's prefix. Each call
// produces an independent decorator sharing the same prefix value.
func (l *PrefixLayer) Apply(inner metrics.Recorder) metrics.Recorder {
	return NewPrefix(l.prefix, inner)
}
