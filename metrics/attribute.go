package metrics

// Attribute is metric metadata attached to a metric class through the
// attribute-setting operations on a Recorder. Decorators forward attributes
// unmodified; recorders act on the concrete attribute types they understand
// and ignore the rest.
//
// The attribute set is closed: Description, Unit, and Buckets.
type Attribute interface {
	isAttribute()
}

// Description is a human-readable description of a metric.
type Description string

func (Description) isAttribute() {}

// Unit names the unit of measurement of a metric (for example "1", "ms",
// "By"). Backends without a unit concept ignore it.
type Unit string

func (Unit) isAttribute() {}

// Buckets carries explicit histogram bucket boundaries, in ascending order,
// honored by backends that support them.
type Buckets []float64

func (Buckets) isAttribute() {}
