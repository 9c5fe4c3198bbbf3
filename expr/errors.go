// Package expr: sentinel error set.
// All evaluation failures return these sentinels; callers match with
// errors.Is. Context is added at the call site via fmt.Errorf("...: %w").
package expr

import "errors"

var (
	// ErrFreeSymbol indicates Eval met a symbol missing from its environment.
	ErrFreeSymbol = errors.New("expr: free symbol has no value")

	// ErrUnknownFunction indicates Eval met a Call whose FuncDef carries
	// neither a numeric implementation nor an expansion.
	ErrUnknownFunction = errors.New("expr: function has no numeric implementation")

	// ErrArity indicates a Call was built or evaluated with an argument
	// count the FuncDef does not accept.
	ErrArity = errors.New("expr: wrong argument count for function")
)
