// Package types defines the core value abstraction for littlecalc.
// Every operand that can live on the stack implements the Value
// interface; the Kind tag tells modules and the registry which
// concrete representation they are looking at.
package types

// Kind identifies a numeric representation (e.g. "integer", "decimal").
// A value's kind is fixed at construction.
type Kind string

// Value is the interface all stack operands implement.
type Value interface {
	// String returns the canonical text form. Parsing this text with
	// the value's own kind yields an equal value (round-trip).
	String() string
	// Kind returns the representation tag, used for overload
	// resolution and error messages.
	Kind() Kind
	// Equal reports equality with another value. Values of different
	// kinds are never equal.
	Equal(other Value) bool
}

// KindsOf returns the kind tags of values, in the given order.
func KindsOf(values []Value) []Kind {
	kinds := make([]Kind, len(values))
	for i, v := range values {
		kinds[i] = v.Kind()
	}
	return kinds
}
