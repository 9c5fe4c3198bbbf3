package compile_test

import (
	"fmt"

	"github.com/katalvlaran/numexpr/compile"
	"github.com/katalvlaran/numexpr/expr"
)

// ExampleCompile compiles a two-variable expression and calls it with a
// scalar and with a broadcast array.
func ExampleCompile() {
	x := expr.NewSymbol("x")
	y := expr.NewSymbol("y")

	f, err := compile.Compile(expr.AddOf(x, y), []expr.Symbol{x, y}, nil)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	scalar, _ := f.Call(2.0, 3.0)
	array, _ := f.Call([]float64{1, 2, 3}, 10.0)
	fmt.Println(scalar)
	fmt.Println(array)
	// Output:
	// 5
	// [11 12 13]
}

// ExampleFunc_Freeze freezes one variable to a constant and another to
// the dynamic state resolved from a live parameter context.
func ExampleFunc_Freeze() {
	x := expr.NewSymbol("x")
	a := expr.NewSymbol("a")
	t := expr.NewSymbol("t")

	f, err := compile.Compile(
		expr.AddOf(expr.MulOf(a, x), t),
		[]expr.Symbol{x, a, t},
		nil,
	)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	g, _ := f.Freeze(map[expr.Symbol]any{a: 2.0, t: compile.Dynamic})
	ctx := compile.NewParamContext()
	_ = ctx.Set(t, 100.0)
	g.SetParamContext(ctx)

	out, _ := g.Call(3.0)
	fmt.Println(out)

	_ = ctx.Set(t, 0.0) // external mutation, no recompilation
	out, _ = g.Call(3.0)
	fmt.Println(out)
	// Output:
	// 106
	// 6
}

// ExampleCache shows memoized compilation with stats.
func ExampleCache() {
	x := expr.NewSymbol("x")
	e := expr.PowOf(x, expr.N(2))
	c := compile.NewCache(32)

	f1, _ := c.Compile(e, x, nil)
	f2, _ := c.Compile(e, x, nil)
	fmt.Println("shared artifact:", f1.Artifact() == f2.Artifact())

	s := c.Stats()
	fmt.Printf("hits=%d misses=%d len=%d\n", s.Hits, s.Misses, s.Len)
	// Output:
	// shared artifact: true
	// hits=1 misses=1 len=1
}
