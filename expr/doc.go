// Package expr provides the immutable symbolic expression kernel consumed
// by the numexpr compiler.
//
// The expression model is a small, deterministic node set:
//
//   - Num    — numeric literal (float64)
//   - Symbol — a variable with identity; two symbols created separately are
//     distinct even when their display names collide
//   - Add    — n-ary sum (flattened, literal terms folded)
//   - Mul    — n-ary product (flattened, literal factors folded)
//   - Pow    — base^exponent
//   - Call   — application of a FuncDef to argument expressions
//
// Trees are immutable and referentially transparent: structurally identical
// trees compare equal (Equal) and hash identically (Hash), which is what
// makes compilation caching sound.
//
// FuncDef carries the two pieces of metadata the compiler consumes:
//
//   - an optional numeric implementation (Impl), auto-discovered by the
//     binding resolver when no explicit binding claims the function name;
//   - an optional definition expansion (Expansion), applied to a fixed
//     point by ExpandDefinitions before code generation.
//
// Operations:
//
//	FreeSymbols(e)            // free symbols in first-appearance order
//	Subst(e, map[Symbol]Expr) // capture-free substitution, returns new tree
//	Hash(e)                   // structural FNV-1a fingerprint
//	ExpandDefinitions(e, n)   // bounded fixed-point definition expansion
//	Eval(e, env)              // direct numeric evaluation at a point
//
// All operations are pure: they never mutate their input and return either
// a new tree or the input itself when nothing changed.
package expr
