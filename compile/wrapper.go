package compile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/numexpr/expr"
	"github.com/katalvlaran/numexpr/vec"
)

// Variable states of the calling-convention wrapper.
type stateKind uint8

const (
	// stateFree — the variable consumes a call argument.
	stateFree stateKind = iota
	// stateFrozen — the variable substitutes its captured value.
	stateFrozen
	// stateDynamic — the variable reads the attached ParamContext.
	stateDynamic
)

// dynamicMarker is the type of the Dynamic sentinel.
type dynamicMarker struct{}

// Dynamic is the freeze marker that puts a variable into the Dynamic
// state instead of freezing it to a constant:
//
//	g, err := f.Freeze(map[expr.Symbol]any{t: compile.Dynamic})
var Dynamic dynamicMarker

// varState is one variable's tagged state: Free, Frozen(value), Dynamic.
type varState struct {
	kind stateKind
	val  vec.Value // captured value, meaningful only when frozen
}

// Func is the calling-convention wrapper around a shared, immutable
// Artifact. It owns the per-variable Free/Frozen/Dynamic classification
// and a non-owning reference to an optional ParamContext.
//
// Freeze and Unfreeze return a new Func sharing the same Artifact — no
// recompilation ever happens past the initial compile. Concurrent calls
// against one Func are safe; Freeze/Unfreeze/SetParamContext construct or
// reconfigure wrappers and should not race with in-flight calls on the
// same wrapper.
type Func struct {
	art    *Artifact
	states []varState
	pctx   *ParamContext
}

// newFunc wraps an artifact with every variable in the Free state.
func newFunc(a *Artifact) *Func {
	return &Func{art: a, states: make([]varState, len(a.sig))}
}

// clone copies the wrapper: shared artifact, copied states, same context.
func (f *Func) clone() *Func {
	states := make([]varState, len(f.states))
	copy(states, f.states)
	return &Func{art: f.art, states: states, pctx: f.pctx}
}

// Vars returns the full declared symbol tuple, in signature order.
func (f *Func) Vars() []expr.Symbol {
	out := make([]expr.Symbol, len(f.art.sig))
	for i, e := range f.art.sig {
		out[i] = e.Sym
	}
	return out
}

// VarNames returns the display names of the declared variables.
func (f *Func) VarNames() []string {
	out := make([]string, len(f.art.sig))
	for i, e := range f.art.sig {
		out[i] = e.Sym.Name()
	}
	return out
}

// FreeVars returns the symbols currently in the Free state, in signature
// order — exactly the variables a call must supply.
func (f *Func) FreeVars() []expr.Symbol {
	var out []expr.Symbol
	for i, e := range f.art.sig {
		if f.states[i].kind == stateFree {
			out = append(out, e.Sym)
		}
	}
	return out
}

// Signature returns the call signature. Treat as read-only.
func (f *Func) Signature() CallSignature { return f.art.sig }

// Artifact returns the shared compiled artifact. Wrappers produced by
// Freeze/Unfreeze, and cache hits on the same fingerprint, all return the
// same instance.
func (f *Func) Artifact() *Artifact { return f.art }

// Source returns the artifact's generated source text (inspection only).
func (f *Func) Source() string { return f.art.source }

// Expression returns the compiled (expanded) expression tree.
func (f *Func) Expression() expr.Expr { return f.art.exprTree }

// Freeze reclassifies variables and returns a new Func sharing the same
// Artifact. Each map value is either a numeric constant (the variable
// becomes Frozen) or the Dynamic marker (the variable resolves from the
// attached ParamContext at call time). Refreezing an already non-free
// variable simply replaces its classification.
//
// Errors: ErrUnknownVariable for a symbol outside the compiled spec,
// ErrBadArgument for an unsupported value type.
func (f *Func) Freeze(values map[expr.Symbol]any) (*Func, error) {
	g := f.clone()
	for sym, raw := range values {
		i, err := f.slotIndex(sym)
		if err != nil {
			return nil, err
		}
		if _, dyn := raw.(dynamicMarker); dyn {
			g.states[i] = varState{kind: stateDynamic}
			continue
		}
		v, err := toValue(raw)
		if err != nil {
			return nil, fmt.Errorf("freeze %q: %w", sym.Name(), err)
		}
		g.states[i] = varState{kind: stateFrozen, val: v}
	}
	return g, nil
}

// Unfreeze returns a new Func with the named variables back in the Free
// state. With no arguments it unfreezes everything currently non-free.
// Unfreezing an already-free variable is a no-op.
//
// Errors: ErrUnknownVariable for a symbol outside the compiled spec.
func (f *Func) Unfreeze(syms ...expr.Symbol) (*Func, error) {
	g := f.clone()
	if len(syms) == 0 {
		for i := range g.states {
			g.states[i] = varState{}
		}
		return g, nil
	}
	for _, sym := range syms {
		i, err := f.slotIndex(sym)
		if err != nil {
			return nil, err
		}
		g.states[i] = varState{}
	}
	return g, nil
}

// SetParamContext attaches ctx as the resolution source for Dynamic
// variables. The context stays externally owned; the wrapper only reads
// it. Frozen/Dynamic classification is untouched.
func (f *Func) SetParamContext(ctx *ParamContext) { f.pctx = ctx }

// RemoveParamContext detaches the context, leaving classification intact.
func (f *Func) RemoveParamContext() { f.pctx = nil }

// Call invokes the compiled function with positional arguments for the
// free positional slots. Free keyword slots cannot be filled this way —
// use CallNamed.
//
// Accepted argument forms: float64, float32, int kinds, []float64,
// vec.Value. Scalars broadcast against array arguments.
//
// Errors: ErrArityMismatch (listing every unresolved variable and every
// unconsumed argument), ErrMissingContext, ErrContextSymbol,
// ErrBadArgument, vec.ErrShapeMismatch, ErrScalarOnly.
func (f *Func) Call(args ...any) (vec.Value, error) {
	return f.CallNamed(args, nil)
}

// CallNamed invokes the compiled function with positional arguments for
// free positional slots and named arguments for free keyword slots.
func (f *Func) CallNamed(pos []any, named map[string]any) (vec.Value, error) {
	vals, err := f.resolveArgs(pos, named)
	if err != nil {
		return vec.Value{}, err
	}
	return f.art.invoke(vals)
}

// resolveArgs walks the signature in order and produces one value per
// entry: frozen variables substitute their captured value, dynamic
// variables read the context, free variables consume the next positional
// argument or their keyword argument. Arity violations are collected
// across the whole walk and reported together.
func (f *Func) resolveArgs(pos []any, named map[string]any) ([]vec.Value, error) {
	vals := make([]vec.Value, len(f.art.sig))
	next := 0
	var missing []string
	usedNames := make(map[string]struct{}, len(named))

	for i, entry := range f.art.sig {
		switch st := f.states[i]; st.kind {
		case stateFrozen:
			vals[i] = st.val
		case stateDynamic:
			if f.pctx == nil {
				return nil, fmt.Errorf("variable %q: %w", entry.Sym.Name(), ErrMissingContext)
			}
			v, ok := f.pctx.Get(entry.Sym)
			if !ok {
				return nil, fmt.Errorf("variable %q: %w", entry.Sym.Name(), ErrContextSymbol)
			}
			vals[i] = v
		case stateFree:
			if entry.Name != "" {
				raw, ok := named[entry.Name]
				if !ok {
					missing = append(missing, entry.Name)
					continue
				}
				usedNames[entry.Name] = struct{}{}
				v, err := toValue(raw)
				if err != nil {
					return nil, fmt.Errorf("argument %q: %w", entry.Name, err)
				}
				vals[i] = v
				continue
			}
			if next >= len(pos) {
				missing = append(missing, entry.Sym.Name())
				continue
			}
			v, err := toValue(pos[next])
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", next, err)
			}
			vals[i] = v
			next++
		}
	}

	var faults []string
	if len(missing) > 0 {
		faults = append(faults, "unresolved variables: "+strings.Join(missing, ", "))
	}
	if extra := len(pos) - next; extra > 0 {
		faults = append(faults, strconv.Itoa(extra)+" extra positional argument(s)")
	}
	if len(named) > len(usedNames) {
		var unknown []string
		for n := range named {
			if _, ok := usedNames[n]; !ok {
				unknown = append(unknown, n)
			}
		}
		sort.Strings(unknown)
		faults = append(faults, "unknown keyword argument(s): "+strings.Join(unknown, ", "))
	}
	if len(faults) > 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(faults, "; "), ErrArityMismatch)
	}
	return vals, nil
}

// slotIndex maps a declared symbol to its signature index.
func (f *Func) slotIndex(sym expr.Symbol) (int, error) {
	for i, e := range f.art.sig {
		if e.Sym == sym {
			return i, nil
		}
	}
	return 0, fmt.Errorf("symbol %q: %w", sym.Name(), ErrUnknownVariable)
}
