package compile

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/katalvlaran/numexpr/expr"
)

// Compile builds a fresh callable for e over the given variable
// declaration, bypassing any cache. Use a Cache when structurally
// identical requests should share one artifact; use Compile directly when
// a guaranteed-fresh artifact is wanted (tests, intentionally distinct
// closures over mutable bound objects).
//
// vars accepts every form NormalizeVars documents. opts may be nil for
// DefaultOptions.
//
// Errors: ErrInvalidSpec, ErrInvalidBinding, ErrOverlappingBinding,
// ErrUnboundSymbol, ErrUnboundFunction — all eagerly, all batched where
// several offenders exist.
func Compile(e expr.Expr, vars any, opts *Options) (*Func, error) {
	st, err := prepare(e, vars, opts)
	if err != nil {
		return nil, err
	}
	art, err := st.finish()
	if err != nil {
		return nil, err
	}
	return newFunc(art), nil
}

// buildState carries a validated request between the cheap front half of
// the pipeline (normalize, expand, resolve — enough to fingerprint) and
// the back half (allocate identifiers, lower, render).
type buildState struct {
	e    expr.Expr
	spec VarSpec
	r    *resolved
	opts Options
}

// prepare runs normalization, definition expansion, binding resolution,
// and unknown-function validation. Pure and cheap relative to lowering;
// the cache runs it on every request to compute the fingerprint.
func prepare(e expr.Expr, vars any, opts *Options) (*buildState, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression: %w", ErrBadArgument)
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	spec, err := NormalizeVars(vars)
	if err != nil {
		return nil, err
	}
	if o.ExpandDefinitions {
		e = expr.ExpandDefinitions(e, o.ExpandBudget)
	}
	r, err := resolveBindings(e, o.Bindings, spec)
	if err != nil {
		return nil, err
	}
	return &buildState{e: e, spec: spec, r: r, opts: o}, nil
}

// finish allocates identifiers and lowers the expression into an Artifact.
func (st *buildState) finish() (*Artifact, error) {
	sig := allocateIdents(st.spec, st.r.consts)
	return codegen(st.e, sig, st.r, st.opts.Vectorize)
}

// fingerprint canonicalizes the request into a cache key: the structural
// expression hash, the variable tuple (symbol identities plus keyword
// names), the constant bindings keyed by generated identifier with a
// value marker (the scalar value itself when hashable, the array's
// storage identity otherwise), the function bindings by callable
// identity, and the two flags. Identifier allocation is deterministic, so
// running it here and again in finish yields the same names.
func (st *buildState) fingerprint() string {
	allocateIdents(st.spec, st.r.consts)

	var b strings.Builder
	fmt.Fprintf(&b, "e:%x", expr.Hash(st.e))

	b.WriteString("|v:")
	for _, sl := range st.spec.Slots() {
		fmt.Fprintf(&b, "%d/%s,", sl.Symbol().ID(), sl.Name())
	}

	b.WriteString("|c:")
	for _, c := range st.r.consts {
		if xs := c.val.Floats(); xs != nil {
			// Arrays are mutable and unhashable; key by storage identity.
			// The length is part of the identity: two slices over one
			// backing array share a base pointer but are distinct constants.
			fmt.Fprintf(&b, "%s=a0x%x/%d,", c.ident, reflect.ValueOf(xs).Pointer(), len(xs))
		} else {
			fmt.Fprintf(&b, "%s=s%v,", c.ident, c.val.Float())
		}
	}

	b.WriteString("|f:")
	for _, def := range sortedDefs(st.r.funcs) {
		fmt.Fprintf(&b, "%s=0x%x,", def.Name(),
			reflect.ValueOf(st.r.funcs[def]).Pointer())
	}

	fmt.Fprintf(&b, "|vec:%t|exp:%t", st.opts.Vectorize, st.opts.ExpandDefinitions)
	return b.String()
}

// sortedDefs orders the function-binding keys deterministically: by name,
// then by identity for same-named definitions.
func sortedDefs(funcs map[*expr.FuncDef]expr.NumericFn) []*expr.FuncDef {
	defs := make([]*expr.FuncDef, 0, len(funcs))
	for d := range funcs {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Name() != defs[j].Name() {
			return defs[i].Name() < defs[j].Name()
		}
		return reflect.ValueOf(defs[i]).Pointer() < reflect.ValueOf(defs[j]).Pointer()
	})
	return defs
}
