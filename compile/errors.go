// Package compile: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors. All components
// return these sentinels and tests match them via errors.Is. Context (the
// offending names, counts) is attached with fmt.Errorf("...: %w", ErrX).
// Validation failures that can name several offenders name all of them in
// one error, not just the first found.
package compile

import "errors"

var (
	// ErrInvalidSpec indicates a malformed variable spec: duplicate
	// symbol, non-contiguous integer keys, or an element of the wrong type.
	ErrInvalidSpec = errors.New("compile: invalid variable spec")

	// ErrUnboundSymbol indicates free symbols of the expression covered by
	// neither the variable spec nor a constant binding. The message lists
	// every such symbol.
	ErrUnboundSymbol = errors.New("compile: unbound symbol")

	// ErrOverlappingBinding indicates a symbol declared both as a variable
	// and as a constant binding — an ambiguous source of value.
	ErrOverlappingBinding = errors.New("compile: symbol is both variable and constant binding")

	// ErrInvalidBinding indicates a binding key that is neither a symbol
	// nor a function identity, or a function binding whose value is not
	// callable, or a constant binding whose value is not numeric.
	ErrInvalidBinding = errors.New("compile: invalid binding")

	// ErrUnboundFunction indicates function calls that survive binding
	// resolution with no implementation. The message lists every such
	// function name.
	ErrUnboundFunction = errors.New("compile: unbound function")

	// ErrArityMismatch indicates a call with too few or too many
	// arguments for the current Free/Frozen/Dynamic classification. The
	// message lists the unresolved variables or unconsumed arguments.
	ErrArityMismatch = errors.New("compile: call arity mismatch")

	// ErrMissingContext indicates a dynamic variable was needed but no
	// ParamContext is attached.
	ErrMissingContext = errors.New("compile: dynamic variable needs a parameter context")

	// ErrContextSymbol indicates the attached ParamContext has no value
	// for a dynamic variable.
	ErrContextSymbol = errors.New("compile: parameter context lacks symbol")

	// ErrUnknownVariable indicates Freeze/Unfreeze named a symbol outside
	// the compiled variable spec.
	ErrUnknownVariable = errors.New("compile: symbol is not a declared variable")

	// ErrBadArgument indicates a call argument or binding value of an
	// unsupported type (accepted: float64, float32, ints, []float64,
	// vec.Value).
	ErrBadArgument = errors.New("compile: unsupported argument type")

	// ErrScalarOnly indicates an array argument reached an artifact
	// compiled without vectorization.
	ErrScalarOnly = errors.New("compile: artifact is not vectorized, scalar arguments only")
)
