package vec

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a scalar float64 or a view over a []float64.
// The zero Value is the scalar 0.
type Value struct {
	scalar float64
	arr    []float64
	isArr  bool
}

// Scalar wraps a float64 as a Value.
func Scalar(v float64) Value { return Value{scalar: v} }

// Array wraps xs as a Value without copying. The caller retains ownership
// of the slice; mutating it mutates the Value.
func Array(xs []float64) Value { return Value{arr: xs, isArr: true} }

// IsArray reports whether the value is an array.
func (v Value) IsArray() bool { return v.isArr }

// Float returns the scalar payload. For an array value it returns the
// first element (only meaningful after a broadcast established length 1);
// check IsArray first when shape matters.
func (v Value) Float() float64 {
	if v.isArr {
		return v.arr[0]
	}
	return v.scalar
}

// Floats returns the underlying array without copying, or nil for a
// scalar. Treat as read-only.
func (v Value) Floats() []float64 {
	if v.isArr {
		return v.arr
	}
	return nil
}

// Len returns the array length, or 1 for a scalar.
func (v Value) Len() int {
	if v.isArr {
		return len(v.arr)
	}
	return 1
}

// At returns element i. Scalars broadcast: every index yields the scalar.
func (v Value) At(i int) float64 {
	if v.isArr {
		return v.arr[i]
	}
	return v.scalar
}

// String renders the value for diagnostics.
func (v Value) String() string {
	if !v.isArr {
		return strconv.FormatFloat(v.scalar, 'g', -1, 64)
	}
	parts := make([]string, len(v.arr))
	for i, x := range v.arr {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// AsArray materializes v as a freshly allocated length-n array,
// broadcasting a scalar across all n slots. Returns ErrShapeMismatch when
// v is an array of a different length.
func AsArray(v Value, n int) ([]float64, error) {
	out := make([]float64, n)
	if v.isArr {
		if len(v.arr) != n {
			return nil, fmt.Errorf("want %d, have %d: %w", n, len(v.arr), ErrShapeMismatch)
		}
		copy(out, v.arr)
		return out, nil
	}
	for i := range out {
		out[i] = v.scalar
	}
	return out, nil
}

// BroadcastLength computes the common length implied by vals: the shared
// length of all array participants, with scalars stretching to fit.
// isArray reports whether any participant was an array — when false the
// broadcast is degenerate and the result shape is scalar.
//
// Errors: ErrEmptyArray for a zero-length participant, ErrShapeMismatch
// when two arrays disagree on length.
func BroadcastLength(vals ...Value) (n int, isArray bool, err error) {
	n = 1
	for _, v := range vals {
		if !v.isArr {
			continue
		}
		if len(v.arr) == 0 {
			return 0, false, ErrEmptyArray
		}
		if !isArray {
			isArray = true
			n = len(v.arr)
			continue
		}
		if len(v.arr) != n {
			return 0, false, fmt.Errorf("%d vs %d: %w", n, len(v.arr), ErrShapeMismatch)
		}
	}
	return n, isArray, nil
}

// ZerosLike returns a zero value with the same shape as v: the scalar 0
// for a scalar, a fresh all-zero array of equal length for an array.
func ZerosLike(v Value) Value {
	if !v.isArr {
		return Value{}
	}
	return Value{arr: make([]float64, len(v.arr)), isArr: true}
}
