// SPDX-License-Identifier: MIT

// Package task: tagged buffer views.
//
// A Buffer is a discriminated union over one typed element slice. It replaces
// the raw (pointer, count) pairs: the element type travels with the data, so
// a task asking for []float64 from an []int32 slot gets ErrTypeMismatch
// instead of reinterpreting memory.
//
// Ownership:
//   - A Buffer aliases the caller's slice; writes through View are visible to
//     the caller. Nothing is copied, nothing is freed.
//
// Complexity: every operation is O(1).

package task

import "fmt"

// ElemType tags the element type held by a Buffer.
type ElemType uint8

const (
	// Invalid is the zero ElemType (an empty Buffer{}).
	Invalid ElemType = iota
	Float64
	Float32
	Int64
	Int32
	Uint8
)

// String returns the Go name of the element type.
func (t ElemType) String() string {
	switch t {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Int64:
		return "int64"
	case Int32:
		return "int32"
	case Uint8:
		return "uint8"
	default:
		return "invalid"
	}
}

// Elem is the set of element types a Buffer can carry.
type Elem interface {
	float64 | float32 | int64 | int32 | uint8
}

// Buffer is a typed, non-owning view over a caller slice.
// The zero value is an empty buffer of type Invalid.
type Buffer struct {
	typ  ElemType
	data any // one of []float64, []float32, []int64, []int32, []uint8
}

// NewBuffer wraps v without copying.
func NewBuffer[T Elem](v []T) Buffer {
	return Buffer{typ: elemTypeOf[T](), data: v}
}

// Type returns the element type tag.
func (b Buffer) Type() ElemType { return b.typ }

// Len returns the element count (the "count" of the slot).
func (b Buffer) Len() int {
	switch s := b.data.(type) {
	case []float64:
		return len(s)
	case []float32:
		return len(s)
	case []int64:
		return len(s)
	case []int32:
		return len(s)
	case []uint8:
		return len(s)
	default:
		return 0
	}
}

// String renders "<type>[<len>]".
func (b Buffer) String() string {
	return fmt.Sprintf("%s[%d]", b.typ, b.Len())
}

// View returns the underlying slice when the buffer holds elements of type T.
// A mismatching tag yields a ValidationFailed error wrapping ErrTypeMismatch.
func View[T Elem](b Buffer) ([]T, error) {
	want := elemTypeOf[T]()
	if b.typ != want {
		return nil, Errorf(ValidationFailed, "%w: have %s, want %s", ErrTypeMismatch, b.typ, want)
	}
	v, _ := b.data.([]T)
	return v, nil
}

// elemTypeOf maps the type parameter to its tag.
func elemTypeOf[T Elem]() ElemType {
	var zero T
	switch any(zero).(type) {
	case float64:
		return Float64
	case float32:
		return Float32
	case int64:
		return Int64
	case int32:
		return Int32
	case uint8:
		return Uint8
	default:
		return Invalid
	}
}
