package compile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/numexpr/expr"
	"github.com/katalvlaran/numexpr/vec"
)

// Bindings supplies runtime values consulted during compilation.
//
// Keys:
//   - expr.Symbol   — a constant binding; the value must be numeric
//     (float64, int kinds, []float64, vec.Value). The symbol's value is
//     injected from a captured table, so it may be a whole array.
//   - *expr.FuncDef — a function binding by identity; the value must be an
//     expr.NumericFn (or a plain func(...float64) float64).
//   - string        — a function binding by display name; it claims every
//     call whose definition carries that name.
//
// Any other key type, a non-callable function value, or a non-numeric
// constant value fails with ErrInvalidBinding.
type Bindings map[any]any

// constBinding is one resolved constant: the symbol, its generated
// identifier (allocated later), and the captured value.
type constBinding struct {
	sym   expr.Symbol
	ident string
	val   vec.Value
}

// resolved is the output of binding resolution: constants in a
// deterministic order plus callables keyed by function identity.
type resolved struct {
	consts []constBinding
	funcs  map[*expr.FuncDef]expr.NumericFn
}

// resolveBindings splits b into constant and function bindings, validates
// them against the spec and the (already expanded) expression, and
// auto-discovers implementations attached to FuncDef metadata.
//
// Precedence: an explicit binding — by identity or by name — always beats
// an auto-discovered implementation.
//
// Errors, in checking order:
//   - ErrInvalidBinding     — bad key type or bad value type;
//   - ErrOverlappingBinding — a bound symbol is also a declared variable;
//   - ErrUnboundSymbol      — free symbols covered by neither spec nor
//     constants (all of them, sorted by name);
//   - ErrUnboundFunction    — calls that survive with no implementation
//     (all of them, sorted by name).
func resolveBindings(e expr.Expr, b Bindings, spec VarSpec) (*resolved, error) {
	r := &resolved{funcs: make(map[*expr.FuncDef]expr.NumericFn)}

	declared := make(map[expr.Symbol]struct{}, spec.Len())
	for _, s := range spec.All() {
		declared[s] = struct{}{}
	}

	constVals := make(map[expr.Symbol]vec.Value)
	byName := make(map[string]expr.NumericFn)
	for key, val := range b {
		switch k := key.(type) {
		case expr.Symbol:
			if _, ok := declared[k]; ok {
				return nil, fmt.Errorf("symbol %q: %w", k.Name(), ErrOverlappingBinding)
			}
			v, err := toValue(val)
			if err != nil {
				return nil, fmt.Errorf("constant for %q: %w (%v)", k.Name(), ErrInvalidBinding, err)
			}
			constVals[k] = v
		case *expr.FuncDef:
			fn, err := asCallable(val)
			if err != nil {
				return nil, fmt.Errorf("function %q: %w", k.Name(), err)
			}
			r.funcs[k] = fn
		case string:
			fn, err := asCallable(val)
			if err != nil {
				return nil, fmt.Errorf("function %q: %w", k, err)
			}
			byName[k] = fn
		default:
			return nil, fmt.Errorf("key %v (%T): %w", key, key, ErrInvalidBinding)
		}
	}

	// Name-keyed bindings claim every matching definition in the tree;
	// identity-keyed bindings win when both apply.
	calls := expr.Calls(e)
	for _, c := range calls {
		def := c.Def()
		if _, ok := r.funcs[def]; ok {
			continue
		}
		if fn, ok := byName[def.Name()]; ok {
			r.funcs[def] = fn
		}
	}

	// Auto-discovery: a definition carrying a numeric implementation binds
	// itself unless an explicit binding already claimed it.
	for _, c := range calls {
		def := c.Def()
		if _, ok := r.funcs[def]; ok {
			continue
		}
		if impl := def.Impl(); impl != nil {
			r.funcs[def] = impl
		}
	}

	// Every free symbol must come from somewhere: the spec or a constant.
	var unbound []string
	for _, s := range expr.FreeSymbols(e) {
		if _, ok := declared[s]; ok {
			continue
		}
		if _, ok := constVals[s]; ok {
			continue
		}
		unbound = append(unbound, s.Name())
	}
	if len(unbound) > 0 {
		sort.Strings(unbound)
		return nil, fmt.Errorf("%s: %w", strings.Join(unbound, ", "), ErrUnboundSymbol)
	}

	if err := validateFunctions(calls, r.funcs); err != nil {
		return nil, err
	}

	// Canonical constant order: by symbol identity, so identical requests
	// resolve — and fingerprint — identically regardless of map iteration.
	r.consts = make([]constBinding, 0, len(constVals))
	for s, v := range constVals {
		r.consts = append(r.consts, constBinding{sym: s, val: v})
	}
	sort.Slice(r.consts, func(i, j int) bool {
		return r.consts[i].sym.ID() < r.consts[j].sym.ID()
	})
	return r, nil
}

// validateFunctions proves every call has an implementation, batching all
// violations into a single ErrUnboundFunction so the caller can fix them
// in one pass.
func validateFunctions(calls []*expr.Call, funcs map[*expr.FuncDef]expr.NumericFn) error {
	missing := make(map[string]struct{})
	for _, c := range calls {
		if _, ok := funcs[c.Def()]; !ok {
			missing[c.Def().Name()] = struct{}{}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, 0, len(missing))
	for n := range missing {
		names = append(names, n)
	}
	sort.Strings(names)
	return fmt.Errorf("%s: %w", strings.Join(names, ", "), ErrUnboundFunction)
}

// asCallable validates a function-binding value.
func asCallable(v any) (expr.NumericFn, error) {
	switch fn := v.(type) {
	case expr.NumericFn:
		return fn, nil
	case func(args ...float64) float64:
		return fn, nil
	}
	return nil, fmt.Errorf("value %T is not callable: %w", v, ErrInvalidBinding)
}
