// Package compile turns symbolic expressions into reusable, vectorizable
// numeric callables with a reshapeable calling convention.
//
// The pipeline, leaf to root:
//
//  1. Variable spec normalization — a single symbol, an ordered sequence,
//     or an int/string-keyed mapping becomes one canonical VarSpec.
//  2. Definition expansion — custom FuncDef expansions are rewritten to a
//     fixed point under a bounded pass budget.
//  3. Binding resolution — a Bindings map splits into symbol→constant and
//     function→callable bindings; implementations attached to FuncDefs are
//     auto-discovered, with explicit bindings taking precedence.
//  4. Unknown-function validation — every surviving call must resolve;
//     violations are batched into one error naming all of them.
//  5. Identifier allocation — each variable gets a collision-free, valid
//     Go identifier, deterministic for a given spec.
//  6. Lowering — the tree becomes a closure kernel over a flat value
//     environment ordered by the call signature. No source text is ever
//     executed; a pretty-printed form is retained for inspection.
//
// A Cache memoizes Artifacts behind a canonical fingerprint with bounded
// LRU eviction; Compile always builds fresh. Either way the result is
// wrapped in a Func, whose per-variable Free/Frozen/Dynamic states can be
// reshaped with Freeze and Unfreeze — sharing the same Artifact, never
// recompiling.
//
// Invocation walks the signature in order: frozen variables substitute
// their captured value, dynamic variables read the attached ParamContext,
// free variables consume the caller's arguments (positional, or named for
// keyword slots). Arity violations report every unresolved variable and
// every unconsumed argument at once.
//
// Concurrency: an Artifact is immutable and safe to share; concurrent
// calls against one Func, or distinct Funcs sharing an Artifact, need no
// locking. The Cache and ParamContext guard their own state.
//
// Minimal use:
//
//	x, y := expr.NewSymbol("x"), expr.NewSymbol("y")
//	f, err := compile.Compile(expr.AddOf(x, y), []expr.Symbol{x, y}, nil)
//	if err != nil { ... }
//	out, err := f.Call(2, 3) // scalar 5
package compile
