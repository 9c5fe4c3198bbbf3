package compile

// Options configures one compilation request.
//
// Fields:
//   - Bindings          — constant values for symbols and implementations
//     for functions; see the Bindings type for accepted key/value forms.
//   - Vectorize         — when true (the default), compiled callables
//     accept scalar or array arguments and broadcast to the common length;
//     when false they accept scalars only.
//   - ExpandDefinitions — when true (the default), FuncDef expansions are
//     rewritten to a fixed point before code generation.
//   - ExpandBudget      — maximum expansion passes; 0 or less selects
//     expr.DefaultExpandBudget.
//
// Example:
//
//	opts := compile.DefaultOptions()
//	opts.Bindings = compile.Bindings{a: 2.0}
//	f, err := compile.Compile(e, []expr.Symbol{x}, &opts)
type Options struct {
	Bindings          Bindings
	Vectorize         bool
	ExpandDefinitions bool
	ExpandBudget      int
}

// DefaultOptions returns the canonical defaults: vectorized compilation
// with definition expansion enabled and no bindings.
func DefaultOptions() Options {
	return Options{
		Vectorize:         true,
		ExpandDefinitions: true,
	}
}
