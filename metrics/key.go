package metrics

import "strings"

// KeyName is a bare textual metric identifier with no labels. It is used by
// the attribute-setting operations, which address a metric class rather than
// a specific labeled series.
type KeyName string

// Label is a single key/value pair attached to a metric Key.
type Label struct {
	Key   string
	Value string
}

// NewLabel builds a Label from a key and a value.
func NewLabel(key, value string) Label {
	return Label{Key: key, Value: value}
}

// Key identifies a metric series: a name plus a collection of labels.
// Identity for registration purposes is the name together with the labels in
// the order given at construction.
//
// A Key is immutable after construction; constructors copy the label slice
// so later mutation of the caller's slice does not leak into the key. The
// zero Key is usable and names the empty series.
type Key struct {
	name   string
	labels []Label
}

// NewKey builds a Key from a name and an optional list of labels.
func NewKey(name string, labels ...Label) Key {
	var copied []Label
	if len(labels) > 0 {
		copied = make([]Label, len(labels))
		copy(copied, labels)
	}

	return Key{name: name, labels: copied}
}

// NewKeyFromName builds a label-free Key from a bare key name.
func NewKeyFromName(name KeyName) Key {
	return Key{name: string(name)}
}

// Name returns the key's name.
func (k Key) Name() string {
	return k.name
}

// Labels returns the key's labels in construction order. The returned slice
// must not be modified.
func (k Key) Labels() []Label {
	return k.labels
}

// WithName returns a Key carrying the given name and this key's labels. The
// label collection is shared between the two keys; both are immutable, so
// sharing is safe.
func (k Key) WithName(name string) Key {
	return Key{name: name, labels: k.labels}
}

// String renders the key in a canonical name{k=v,...} form. Keys with no
// labels render as the bare name. Backends use this form as a registration
// identity.
func (k Key) String() string {
	if len(k.labels) == 0 {
		return k.name
	}

	var sb strings.Builder

	sb.WriteString(k.name)
	sb.WriteByte('{')

	for i, label := range k.labels {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(label.Key)
		sb.WriteByte('=')
		sb.WriteString(label.Value)
	}

	sb.WriteByte('}')

	return sb.String()
}
