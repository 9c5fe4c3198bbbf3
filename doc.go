// Package numexpr turns immutable symbolic expressions into reusable,
// vectorizable numeric callables — and lets you reshape a callable's
// calling convention afterwards without recompiling.
//
// 🚀 What is numexpr?
//
//	A pure-Go expression-compile toolkit that brings together:
//		• Symbolic kernel: immutable Num/Sym/Add/Mul/Pow/Call trees (expr/)
//		• Vector primitives: scalar-or-vector values with broadcast shapes (vec/)
//		• The compiler: variable specs, bindings, identifier allocation,
//		  closure lowering, LRU-cached artifacts, freeze/unfreeze (compile/)
//
// ✨ Why choose numexpr?
//
//   - Compile once, call many — artifacts are immutable and shared
//   - Freeze variables to constants, or mark them dynamic against a live
//     parameter context, with zero recompilation
//   - Deterministic — identical requests fingerprint identically and hit
//     the bounded LRU cache
//   - Pure Go – no cgo, no code execution at runtime, no hidden state
//
// Everything is organized under three subpackages:
//
//	expr/    — the symbolic algebra collaborator: expression trees,
//	           free-symbol enumeration, structural hashing, definition
//	           expansion, direct evaluation
//	vec/     — scalar/vector values and broadcast-shape primitives
//	compile/ — the compiler core: Compile, Cache, and the Func wrapper
//
// Quick example:
//
//	x := expr.NewSymbol("x")
//	a := expr.NewSymbol("a")
//	f, _ := compile.Compile(expr.MulOf(a, x), []expr.Symbol{x, a}, nil)
//	g, _ := f.Freeze(map[expr.Symbol]any{a: 2.0})
//	out, _ := g.Call(3.0) // 6
//
// See each subpackage's doc.go for the full contract.
package numexpr
