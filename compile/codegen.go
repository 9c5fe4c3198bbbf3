package compile

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/numexpr/expr"
	"github.com/katalvlaran/numexpr/vec"
)

// kernel is the lowered form of an expression: a scalar evaluator over a
// flat environment holding one value per signature entry, then one per
// constant binding, in that order.
type kernel func(env []float64) float64

// Artifact is the immutable output of one compilation: the original
// expression, the call signature, the retained pretty-printed source, and
// the executable kernel. Created once per distinct cache key and shared
// read-only by every Func wrapper that references it.
type Artifact struct {
	exprTree  expr.Expr
	sig       CallSignature
	consts    []constBinding
	source    string
	kern      kernel
	vectorize bool
}

// Expression returns the (expanded) expression the artifact was built from.
func (a *Artifact) Expression() expr.Expr { return a.exprTree }

// Signature returns the call signature. Treat as read-only.
func (a *Artifact) Signature() CallSignature { return a.sig }

// Source returns the generated source text. It exists for inspection and
// documentation only — nothing ever executes it; evaluation runs through
// closures lowered from the expression tree.
func (a *Artifact) Source() string { return a.source }

// Vectorized reports whether the artifact broadcasts array arguments.
func (a *Artifact) Vectorized() bool { return a.vectorize }

// codegen lowers the expression and renders its source, producing the
// finished artifact. The closures capture only the constant table and the
// bound callables — the moral equivalent of compiling into a fresh
// namespace that holds nothing but the vectorization primitives, the
// constant bindings, and the bound functions.
func codegen(e expr.Expr, sig CallSignature, r *resolved, vectorize bool) (*Artifact, error) {
	slot := make(map[expr.Symbol]int, len(sig)+len(r.consts))
	for i, entry := range sig {
		slot[entry.Sym] = i
	}
	for i, c := range r.consts {
		slot[c.sym] = len(sig) + i
	}
	kern, err := lower(e, slot, r.funcs)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		exprTree:  e,
		sig:       sig,
		consts:    r.consts,
		source:    renderSource(e, sig, r.consts, vectorize),
		kern:      kern,
		vectorize: vectorize,
	}, nil
}

// lower recursively turns a tree into a kernel closure.
func lower(e expr.Expr, slot map[expr.Symbol]int, funcs map[*expr.FuncDef]expr.NumericFn) (kernel, error) {
	switch v := e.(type) {
	case expr.Num:
		c := v.Value()
		return func([]float64) float64 { return c }, nil
	case expr.Symbol:
		i, ok := slot[v]
		if !ok {
			// Unreachable after binding resolution; kept as a hard stop
			// against future pipeline reordering.
			return nil, fmt.Errorf("%q: %w", v.Name(), ErrUnboundSymbol)
		}
		return func(env []float64) float64 { return env[i] }, nil
	case *expr.Add:
		terms, err := lowerAll(v.Terms(), slot, funcs)
		if err != nil {
			return nil, err
		}
		return func(env []float64) float64 {
			sum := 0.0
			for _, t := range terms {
				sum += t(env)
			}
			return sum
		}, nil
	case *expr.Mul:
		factors, err := lowerAll(v.Factors(), slot, funcs)
		if err != nil {
			return nil, err
		}
		return func(env []float64) float64 {
			prod := 1.0
			for _, f := range factors {
				prod *= f(env)
			}
			return prod
		}, nil
	case *expr.Pow:
		base, err := lower(v.Base(), slot, funcs)
		if err != nil {
			return nil, err
		}
		exp, err := lower(v.Exp(), slot, funcs)
		if err != nil {
			return nil, err
		}
		return func(env []float64) float64 {
			return math.Pow(base(env), exp(env))
		}, nil
	case *expr.Call:
		fn, ok := funcs[v.Def()]
		if !ok {
			return nil, fmt.Errorf("%q: %w", v.Def().Name(), ErrUnboundFunction)
		}
		args, err := lowerAll(v.Args(), slot, funcs)
		if err != nil {
			return nil, err
		}
		return func(env []float64) float64 {
			buf := make([]float64, len(args))
			for i, a := range args {
				buf[i] = a(env)
			}
			return fn(buf...)
		}, nil
	}
	return nil, fmt.Errorf("unhandled node %T: %w", e, ErrBadArgument)
}

// lowerAll lowers a node slice.
func lowerAll(nodes []expr.Expr, slot map[expr.Symbol]int, funcs map[*expr.FuncDef]expr.NumericFn) ([]kernel, error) {
	out := make([]kernel, len(nodes))
	for i, n := range nodes {
		k, err := lower(n, slot, funcs)
		if err != nil {
			return nil, err
		}
		out[i] = k
	}
	return out, nil
}

// invoke evaluates the artifact against one fully resolved value per
// signature entry (the wrapper has already applied frozen/dynamic/free
// resolution). Vectorized artifacts broadcast every column — arguments
// and constant bindings alike — to the common length and evaluate the
// kernel per element, so a constant expression called with a length-N
// array still yields a length-N array.
func (a *Artifact) invoke(vals []vec.Value) (vec.Value, error) {
	cols := make([]vec.Value, 0, len(vals)+len(a.consts))
	cols = append(cols, vals...)
	for _, c := range a.consts {
		cols = append(cols, c.val)
	}

	env := make([]float64, len(cols))
	if !a.vectorize {
		for i, c := range cols {
			if c.IsArray() {
				return vec.Value{}, fmt.Errorf("argument %d: %w", i, ErrScalarOnly)
			}
			env[i] = c.Float()
		}
		return vec.Scalar(a.kern(env)), nil
	}

	n, isArr, err := vec.BroadcastLength(cols...)
	if err != nil {
		return vec.Value{}, err
	}
	if !isArr {
		for i, c := range cols {
			env[i] = c.Float()
		}
		return vec.Scalar(a.kern(env)), nil
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		for j, c := range cols {
			env[j] = c.At(i)
		}
		out[i] = a.kern(env)
	}
	return vec.Array(out), nil
}

// renderSource pretty-prints the artifact as a Go-like function literal.
// Variables appear under their generated identifiers and constants under
// theirs, with the captured table listed below the body.
func renderSource(e expr.Expr, sig CallSignature, consts []constBinding, vectorize bool) string {
	rename := make(map[expr.Symbol]expr.Expr, len(sig)+len(consts))
	for _, entry := range sig {
		rename[entry.Sym] = expr.NewSymbol(entry.Ident)
	}
	for _, c := range consts {
		rename[c.sym] = expr.NewSymbol(c.ident)
	}
	body := expr.Subst(e, rename).String()

	params := make([]string, len(sig))
	var keyword []string
	for i, entry := range sig {
		params[i] = entry.Ident
		if entry.Name != "" {
			keyword = append(keyword, entry.Name+"="+entry.Ident)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "func(%s) float64 {\n", strings.Join(params, ", "))
	fmt.Fprintf(&b, "\treturn %s\n", body)
	b.WriteString("}\n")
	if len(keyword) > 0 {
		fmt.Fprintf(&b, "// keyword slots: %s\n", strings.Join(keyword, ", "))
	}
	for _, c := range consts {
		fmt.Fprintf(&b, "// const %s = %s\n", c.ident, c.val)
	}
	if vectorize {
		b.WriteString("// vectorized: arguments broadcast to a common length\n")
	}
	return b.String()
}
