package expr

import (
	"fmt"
	"math"
	"sync/atomic"
)

// NumericFn is a numeric implementation of a function: it receives the
// already-evaluated arguments and returns the result. Implementations must
// be pure — the compiler assumes calls are referentially transparent.
type NumericFn func(args ...float64) float64

// Variadic marks a FuncDef that accepts any number of arguments.
const Variadic = -1

// defCounter backs process-unique FuncDef identities (used for hashing).
var defCounter atomic.Uint64

// FuncDef describes a named function usable inside expression trees.
//
// A FuncDef carries up to two pieces of metadata:
//
//   - Impl — a numeric implementation. The binding resolver auto-discovers
//     it when the caller supplies no explicit binding for the name.
//   - Expansion — a rewrite of a call into another expression, applied to
//     a fixed point by ExpandDefinitions before compilation.
//
// A definition with neither is opaque: compiling a tree that still contains
// it fails with an unbound-function error.
//
// FuncDef identity is pointer identity. Configure a definition fully
// (WithImpl/WithExpansion) before sharing it across goroutines; a shared
// FuncDef must be treated as immutable.
type FuncDef struct {
	id     uint64
	name   string
	arity  int
	impl   NumericFn
	expand func(args []Expr) Expr
}

// NewFuncDef creates a definition with the given display name and arity.
// Pass Variadic for arity to accept any argument count.
func NewFuncDef(name string, arity int) *FuncDef {
	return &FuncDef{id: defCounter.Add(1), name: name, arity: arity}
}

// WithImpl attaches a numeric implementation and returns the definition
// for chaining.
func (d *FuncDef) WithImpl(fn NumericFn) *FuncDef {
	d.impl = fn
	return d
}

// WithExpansion attaches a definition rewrite and returns the definition
// for chaining. The rewrite receives the call's arguments and returns the
// replacement expression; it must be pure.
func (d *FuncDef) WithExpansion(fn func(args []Expr) Expr) *FuncDef {
	d.expand = fn
	return d
}

// Name returns the display name.
func (d *FuncDef) Name() string { return d.name }

// Arity returns the declared argument count, or Variadic.
func (d *FuncDef) Arity() int { return d.arity }

// Impl returns the numeric implementation, or nil if none is attached.
func (d *FuncDef) Impl() NumericFn { return d.impl }

// Expansion returns the definition rewrite, or nil if none is attached.
func (d *FuncDef) Expansion() func(args []Expr) Expr { return d.expand }

// checkArity panics when n arguments do not fit the declared arity.
// Building a call with the wrong argument count is a programmer error,
// mirroring how invalid constructor input is treated elsewhere.
func (d *FuncDef) checkArity(n int) {
	if d.arity != Variadic && n != d.arity {
		panic(fmt.Sprintf("%v: %s expects %d args, got %d", ErrArity, d.name, d.arity, n))
	}
}

// Built-in unary definitions with numeric implementations attached.
// They cover the usual transcendental set; callers define their own
// FuncDefs for anything beyond it.
var (
	Sin   = unaryDef("sin", math.Sin)
	Cos   = unaryDef("cos", math.Cos)
	Tan   = unaryDef("tan", math.Tan)
	Exp   = unaryDef("exp", math.Exp)
	Log   = unaryDef("log", math.Log)
	Sqrt  = unaryDef("sqrt", math.Sqrt)
	Abs   = unaryDef("abs", math.Abs)
	Floor = unaryDef("floor", math.Floor)
	Ceil  = unaryDef("ceil", math.Ceil)
)

// unaryDef wraps a math.* function as a one-argument FuncDef.
func unaryDef(name string, fn func(float64) float64) *FuncDef {
	return NewFuncDef(name, 1).WithImpl(func(args ...float64) float64 {
		return fn(args[0])
	})
}
