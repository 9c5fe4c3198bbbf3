package compile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/numexpr/compile"
	"github.com/katalvlaran/numexpr/expr"
	"github.com/katalvlaran/numexpr/vec"
)

// TestCompile_Basic verifies compile(x + y, vars=(x, y))(2, 3) == 5.
func TestCompile_Basic(t *testing.T) {
	x := expr.NewSymbol("x")
	y := expr.NewSymbol("y")

	f, err := compile.Compile(expr.AddOf(x, y), []expr.Symbol{x, y}, nil)
	require.NoError(t, err)

	out, err := f.Call(2.0, 3.0)
	require.NoError(t, err)
	assert.False(t, out.IsArray())
	assert.Equal(t, 5.0, out.Float())
}

// TestCompile_Vectorized verifies broadcasting of mixed scalar and array
// arguments to the common length.
func TestCompile_Vectorized(t *testing.T) {
	x := expr.NewSymbol("x")
	y := expr.NewSymbol("y")

	f, err := compile.Compile(expr.AddOf(x, y), []expr.Symbol{x, y}, nil)
	require.NoError(t, err)

	out, err := f.Call([]float64{1, 2, 3}, 10.0)
	require.NoError(t, err)
	require.True(t, out.IsArray())
	assert.Equal(t, []float64{11, 12, 13}, out.Floats())

	// Two arrays of matching length combine elementwise.
	out, err = f.Call([]float64{1, 2}, []float64{30, 40})
	require.NoError(t, err)
	assert.Equal(t, []float64{31, 42}, out.Floats())

	// Mismatched lengths are a shape error, never a silent truncation.
	_, err = f.Call([]float64{1, 2}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, vec.ErrShapeMismatch)
}

// TestCompile_ConstantBroadcast verifies the constant-expression
// invariant: a compiled constant called with a length-N array yields a
// length-N array of the constant, not a bare scalar.
func TestCompile_ConstantBroadcast(t *testing.T) {
	x := expr.NewSymbol("x")

	f, err := compile.Compile(expr.N(5), x, nil)
	require.NoError(t, err)

	out, err := f.Call([]float64{1, 2, 3})
	require.NoError(t, err)
	require.True(t, out.IsArray())
	assert.Equal(t, []float64{5, 5, 5}, out.Floats())

	// A scalar argument still yields a scalar.
	out, err = f.Call(1.0)
	require.NoError(t, err)
	assert.False(t, out.IsArray())
	assert.Equal(t, 5.0, out.Float())
}

// TestCompile_ScalarOnly verifies the non-vectorized mode rejects arrays.
func TestCompile_ScalarOnly(t *testing.T) {
	x := expr.NewSymbol("x")
	opts := compile.DefaultOptions()
	opts.Vectorize = false

	f, err := compile.Compile(expr.MulOf(x, x), x, &opts)
	require.NoError(t, err)

	out, err := f.Call(4.0)
	require.NoError(t, err)
	assert.Equal(t, 16.0, out.Float())

	_, err = f.Call([]float64{1, 2})
	assert.ErrorIs(t, err, compile.ErrScalarOnly)
}

// TestCompile_ConstantBindings verifies constants are injected from the
// captured table, including whole-array constants.
func TestCompile_ConstantBindings(t *testing.T) {
	x := expr.NewSymbol("x")
	a := expr.NewSymbol("a")

	opts := compile.DefaultOptions()
	opts.Bindings = compile.Bindings{a: 2.0}
	f, err := compile.Compile(expr.MulOf(a, x), x, &opts)
	require.NoError(t, err)
	out, err := f.Call(21.0)
	require.NoError(t, err)
	assert.Equal(t, 42.0, out.Float())

	// An array constant participates in the broadcast like any column.
	offsets := []float64{10, 20, 30}
	opts = compile.DefaultOptions()
	opts.Bindings = compile.Bindings{a: offsets}
	f, err = compile.Compile(expr.AddOf(a, x), x, &opts)
	require.NoError(t, err)
	out, err = f.Call(1.0)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 21, 31}, out.Floats())
}

// TestCompile_MatchesEval verifies the compiled callable agrees with
// direct symbolic evaluation across a grid of points.
func TestCompile_MatchesEval(t *testing.T) {
	x := expr.NewSymbol("x")
	y := expr.NewSymbol("y")
	e := expr.AddOf(
		expr.MulOf(expr.N(3), expr.PowOf(x, expr.N(2))),
		expr.MulOf(expr.SinOf(y), x),
		expr.ExpOf(expr.MulOf(expr.N(-1), y)),
	)

	f, err := compile.Compile(e, []expr.Symbol{x, y}, nil)
	require.NoError(t, err)

	for _, xv := range []float64{-2, -0.5, 0, 1, 3.25} {
		for _, yv := range []float64{-1, 0, 0.75, 2} {
			want, err := expr.Eval(e, map[expr.Symbol]float64{x: xv, y: yv})
			require.NoError(t, err)
			out, err := f.Call(xv, yv)
			require.NoError(t, err)
			assert.InDelta(t, want, out.Float(), 1e-12, "at (%v, %v)", xv, yv)
		}
	}
}

// TestCompile_DefinitionExpansion verifies expansion happens before
// lowering when enabled, and that disabling it surfaces the opaque call.
func TestCompile_DefinitionExpansion(t *testing.T) {
	x := expr.NewSymbol("x")
	square := expr.NewFuncDef("square", 1).WithExpansion(func(args []expr.Expr) expr.Expr {
		return expr.PowOf(args[0], expr.N(2))
	})
	e := expr.CallOf(square, x)

	f, err := compile.Compile(e, x, nil)
	require.NoError(t, err)
	out, err := f.Call(7.0)
	require.NoError(t, err)
	assert.Equal(t, 49.0, out.Float())

	opts := compile.DefaultOptions()
	opts.ExpandDefinitions = false
	_, err = compile.Compile(e, x, &opts)
	assert.ErrorIs(t, err, compile.ErrUnboundFunction,
		"without expansion the definition has no implementation")
}

// TestCompile_Identifiers verifies keyword display names and colliding
// names yield pairwise-distinct, valid generated identifiers.
func TestCompile_Identifiers(t *testing.T) {
	kw := expr.NewSymbol("func")
	v1 := expr.NewSymbol("v")
	v2 := expr.NewSymbol("v")
	odd := expr.NewSymbol("2 fast!")
	arabic := expr.NewSymbol("٣x")

	f, err := compile.Compile(
		expr.AddOf(kw, v1, v2, odd, arabic),
		[]expr.Symbol{kw, v1, v2, odd, arabic},
		nil,
	)
	require.NoError(t, err)

	sig := f.Signature()
	require.Len(t, sig, 5)
	seen := make(map[string]struct{})
	for _, entry := range sig {
		assert.NotContains(t, seen, entry.Ident, "identifiers must be pairwise distinct")
		seen[entry.Ident] = struct{}{}
	}
	assert.Equal(t, "func_", sig[0].Ident, "keyword display names gain an escape suffix")
	assert.Equal(t, "v", sig[1].Ident)
	assert.Equal(t, "v_2", sig[2].Ident, "colliding names gain a numeric suffix")
	assert.Equal(t, "v2_fast_", sig[3].Ident, "illegal runes are replaced, leading digit prefixed")
	assert.Equal(t, "v٣x", sig[4].Ident, "a leading digit of any script gains the prefix")

	// Identity stayed intact: all five slots call-resolve independently.
	out, err := f.Call(1.0, 2.0, 3.0, 4.0, 5.0)
	require.NoError(t, err)
	assert.Equal(t, 15.0, out.Float())
}

// TestCompile_Source verifies the retained source text mentions the
// generated parameters and the constant table.
func TestCompile_Source(t *testing.T) {
	x := expr.NewSymbol("x")
	a := expr.NewSymbol("a")

	opts := compile.DefaultOptions()
	opts.Bindings = compile.Bindings{a: 2.0}
	f, err := compile.Compile(expr.MulOf(a, x), x, &opts)
	require.NoError(t, err)

	src := f.Source()
	assert.Contains(t, src, "func(x) float64")
	assert.Contains(t, src, "return a*x", "constants are referenced by identifier, not inlined")
	assert.Contains(t, src, "const a = 2")
	assert.Contains(t, src, "vectorized")
}
