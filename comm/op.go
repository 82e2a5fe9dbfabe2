// SPDX-License-Identifier: MIT

package comm

// Number is the element constraint of the arithmetic reductions.
type Number interface {
	~int | ~int32 | ~int64 | ~uint8 | ~float32 | ~float64
}

// Op is an element-wise reduction operation.
type Op int

const (
	OpSum Op = iota
	OpProd
	OpMax
	OpMin
)

// String returns the lower-case operation name.
func (op Op) String() string {
	switch op {
	case OpSum:
		return "sum"
	case OpProd:
		return "prod"
	case OpMax:
		return "max"
	case OpMin:
		return "min"
	default:
		return "unknown"
	}
}

func apply[T Number](op Op, a, b T) T {
	switch op {
	case OpProd:
		return a * b
	case OpMax:
		if b > a {
			return b
		}
		return a
	case OpMin:
		if b < a {
			return b
		}
		return a
	default:
		return a + b
	}
}
