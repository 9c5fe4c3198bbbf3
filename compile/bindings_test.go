package compile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/numexpr/compile"
	"github.com/katalvlaran/numexpr/expr"
)

// TestCompile_OverlappingBinding verifies that a symbol declared both as
// a variable and as a constant binding is always rejected.
func TestCompile_OverlappingBinding(t *testing.T) {
	x := expr.NewSymbol("x")
	opts := compile.DefaultOptions()
	opts.Bindings = compile.Bindings{x: 1.0}

	_, err := compile.Compile(expr.AddOf(x, expr.N(1)), x, &opts)
	assert.ErrorIs(t, err, compile.ErrOverlappingBinding)
}

// TestCompile_UnboundSymbols verifies that every uncovered free symbol is
// reported in one batched error.
func TestCompile_UnboundSymbols(t *testing.T) {
	x := expr.NewSymbol("x")
	a := expr.NewSymbol("alpha")
	b := expr.NewSymbol("beta")

	_, err := compile.Compile(expr.AddOf(x, a, b), x, nil)
	require.ErrorIs(t, err, compile.ErrUnboundSymbol)
	assert.Contains(t, err.Error(), "alpha")
	assert.Contains(t, err.Error(), "beta")
}

// TestCompile_InvalidBindings covers the bad-key and bad-value failure
// modes of the binding map.
func TestCompile_InvalidBindings(t *testing.T) {
	x := expr.NewSymbol("x")
	a := expr.NewSymbol("a")
	e := expr.AddOf(x, a)

	// Key of an unsupported type.
	opts := compile.DefaultOptions()
	opts.Bindings = compile.Bindings{42: 1.0}
	_, err := compile.Compile(e, x, &opts)
	assert.ErrorIs(t, err, compile.ErrInvalidBinding)

	// Non-numeric constant value.
	opts = compile.DefaultOptions()
	opts.Bindings = compile.Bindings{a: "two"}
	_, err = compile.Compile(e, x, &opts)
	assert.ErrorIs(t, err, compile.ErrInvalidBinding)

	// Non-callable function value.
	opts = compile.DefaultOptions()
	opts.Bindings = compile.Bindings{a: 1.0, "sin": 3.0}
	_, err = compile.Compile(e, x, &opts)
	assert.ErrorIs(t, err, compile.ErrInvalidBinding)
}

// TestCompile_UnboundFunctions verifies that all unresolved calls are
// named together in one error.
func TestCompile_UnboundFunctions(t *testing.T) {
	x := expr.NewSymbol("x")
	f := expr.NewFuncDef("fuzz", 1)
	g := expr.NewFuncDef("gobble", 1)

	_, err := compile.Compile(expr.AddOf(expr.CallOf(f, x), expr.CallOf(g, x)), x, nil)
	require.ErrorIs(t, err, compile.ErrUnboundFunction)
	assert.Contains(t, err.Error(), "fuzz")
	assert.Contains(t, err.Error(), "gobble")
}

// TestCompile_AutoDiscovery verifies that an implementation attached to a
// FuncDef binds itself with no explicit entry.
func TestCompile_AutoDiscovery(t *testing.T) {
	x := expr.NewSymbol("x")
	halve := expr.NewFuncDef("halve", 1).WithImpl(func(args ...float64) float64 {
		return args[0] / 2
	})

	f, err := compile.Compile(expr.CallOf(halve, x), x, nil)
	require.NoError(t, err)
	out, err := f.Call(10.0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, out.Float())
}

// TestCompile_ExplicitBindingBeatsImpl verifies precedence: an explicit
// binding — by identity or by name — overrides attached metadata.
func TestCompile_ExplicitBindingBeatsImpl(t *testing.T) {
	x := expr.NewSymbol("x")
	halve := expr.NewFuncDef("halve", 1).WithImpl(func(args ...float64) float64 {
		return args[0] / 2
	})
	override := expr.NumericFn(func(args ...float64) float64 { return args[0] * 100 })

	// By identity.
	opts := compile.DefaultOptions()
	opts.Bindings = compile.Bindings{halve: override}
	f, err := compile.Compile(expr.CallOf(halve, x), x, &opts)
	require.NoError(t, err)
	out, err := f.Call(1.0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, out.Float())

	// By display name.
	opts = compile.DefaultOptions()
	opts.Bindings = compile.Bindings{"halve": override}
	f, err = compile.Compile(expr.CallOf(halve, x), x, &opts)
	require.NoError(t, err)
	out, err = f.Call(2.0)
	require.NoError(t, err)
	assert.Equal(t, 200.0, out.Float())
}

// TestCompile_NameBindingResolvesOpaqueCall verifies that a name-keyed
// binding satisfies a definition with no implementation at all.
func TestCompile_NameBindingResolvesOpaqueCall(t *testing.T) {
	x := expr.NewSymbol("x")
	opaque := expr.NewFuncDef("mystery", 2)

	opts := compile.DefaultOptions()
	opts.Bindings = compile.Bindings{
		"mystery": expr.NumericFn(func(args ...float64) float64 { return args[0] - args[1] }),
	}
	f, err := compile.Compile(expr.CallOf(opaque, x, expr.N(1)), x, &opts)
	require.NoError(t, err)
	out, err := f.Call(10.0)
	require.NoError(t, err)
	assert.Equal(t, 9.0, out.Float())
}
