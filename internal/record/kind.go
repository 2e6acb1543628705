package record

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind classifies a record node for traversal.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindObject
	KindSequence
)

// IsKeyed reports whether nodes of this kind are addressed by name.
func (k Kind) IsKeyed() bool {
	return k == KindMapping || k == KindObject
}

// KindOf reports how v is traversed.
func KindOf(v any) Kind {
	if c, ok := Open(v); ok {
		return c.Kind()
	}

	if _, ok := OpenSequence(v); ok {
		return KindSequence
	}

	return KindScalar
}
