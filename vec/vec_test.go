package vec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/numexpr/vec"
)

// TestValue_Basics verifies shape reporting, element access, and the
// broadcast behavior of At on scalars.
func TestValue_Basics(t *testing.T) {
	s := vec.Scalar(2.5)
	assert.False(t, s.IsArray())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2.5, s.Float())
	assert.Equal(t, 2.5, s.At(0))
	assert.Equal(t, 2.5, s.At(99), "scalars broadcast to every index")
	assert.Nil(t, s.Floats())

	a := vec.Array([]float64{1, 2, 3})
	assert.True(t, a.IsArray())
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 2.0, a.At(1))
	assert.Equal(t, []float64{1, 2, 3}, a.Floats())

	var zero vec.Value
	assert.Equal(t, 0.0, zero.Float(), "zero Value is the scalar 0")
}

// TestValue_NoCopy verifies Array wraps the caller's slice by reference.
func TestValue_NoCopy(t *testing.T) {
	xs := []float64{1, 2}
	v := vec.Array(xs)
	xs[0] = 7
	assert.Equal(t, 7.0, v.At(0), "mutating the slice mutates the Value")
}

// TestBroadcastLength covers the scalar-only, mixed, mismatched, and
// empty cases.
func TestBroadcastLength(t *testing.T) {
	n, isArr, err := vec.BroadcastLength(vec.Scalar(1), vec.Scalar(2))
	require.NoError(t, err)
	assert.False(t, isArr, "all-scalar broadcast is degenerate")
	assert.Equal(t, 1, n)

	n, isArr, err = vec.BroadcastLength(vec.Scalar(1), vec.Array([]float64{1, 2, 3}))
	require.NoError(t, err)
	assert.True(t, isArr)
	assert.Equal(t, 3, n)

	_, _, err = vec.BroadcastLength(vec.Array([]float64{1, 2}), vec.Array([]float64{1, 2, 3}))
	assert.ErrorIs(t, err, vec.ErrShapeMismatch)

	_, _, err = vec.BroadcastLength(vec.Array(nil))
	assert.ErrorIs(t, err, vec.ErrEmptyArray)
}

// TestAsArray verifies scalar broadcast materialization, array copying,
// and the length check.
func TestAsArray(t *testing.T) {
	out, err := vec.AsArray(vec.Scalar(5), 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5, 5}, out)

	src := []float64{1, 2, 3}
	out, err = vec.AsArray(vec.Array(src), 3)
	require.NoError(t, err)
	assert.Equal(t, src, out)
	out[0] = 9
	assert.Equal(t, 1.0, src[0], "AsArray returns a fresh copy")

	_, err = vec.AsArray(vec.Array(src), 4)
	assert.ErrorIs(t, err, vec.ErrShapeMismatch)
}

// TestZerosLike verifies shape-preserving zero construction.
func TestZerosLike(t *testing.T) {
	z := vec.ZerosLike(vec.Scalar(3))
	assert.False(t, z.IsArray())
	assert.Equal(t, 0.0, z.Float())

	z = vec.ZerosLike(vec.Array([]float64{1, 2, 3}))
	require.True(t, z.IsArray())
	assert.Equal(t, []float64{0, 0, 0}, z.Floats())
}

// TestValue_String spot-checks the diagnostic rendering.
func TestValue_String(t *testing.T) {
	assert.Equal(t, "2.5", vec.Scalar(2.5).String())
	assert.Equal(t, "[1 2]", vec.Array([]float64{1, 2}).String())
}
