package expr

import (
	"strconv"
	"strings"
)

// Expr is an immutable symbolic expression tree node.
//
// The node set is closed: Num, Symbol, *Add, *Mul, *Pow, *Call. All package
// operations (FreeSymbols, Subst, Hash, Eval, ExpandDefinitions) dispatch
// over exactly these six kinds.
type Expr interface {
	// String renders a deterministic, parenthesized-by-precedence form.
	// Structurally identical trees always print identically.
	String() string

	// Equal reports structural equality. Symbols compare by identity,
	// function calls by FuncDef identity plus argument equality.
	Equal(other Expr) bool
}

// Printing precedence levels, loosest to tightest.
const (
	precAdd = iota + 1
	precMul
	precPow
	precAtom
)

// Num is a numeric literal.
type Num struct {
	val float64
}

// Value returns the literal value.
func (n Num) Value() float64 { return n.val }

// String formats the literal with the shortest round-trip representation.
func (n Num) String() string { return strconv.FormatFloat(n.val, 'g', -1, 64) }

// Equal reports bit-for-bit equality of the literal values.
func (n Num) Equal(other Expr) bool {
	o, ok := other.(Num)
	return ok && n.val == o.val
}

// Add is an n-ary sum. Construct via AddOf; terms are flattened and
// numeric literals folded, so a *Add always has at least two terms.
type Add struct {
	terms []Expr
}

// Terms returns the term slice. Treat as read-only.
func (a *Add) Terms() []Expr { return a.terms }

func (a *Add) String() string { return naryString(a.terms, " + ", precAdd) }

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	return ok && exprsEqual(a.terms, o.terms)
}

// Mul is an n-ary product. Construct via MulOf; factors are flattened and
// numeric literals folded, so a *Mul always has at least two factors.
type Mul struct {
	factors []Expr
}

// Factors returns the factor slice. Treat as read-only.
func (m *Mul) Factors() []Expr { return m.factors }

func (m *Mul) String() string { return naryString(m.factors, "*", precMul) }

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	return ok && exprsEqual(m.factors, o.factors)
}

// Pow is base^exponent. Construct via PowOf.
type Pow struct {
	base, exp Expr
}

// Base returns the base expression.
func (p *Pow) Base() Expr { return p.base }

// Exp returns the exponent expression.
func (p *Pow) Exp() Expr { return p.exp }

func (p *Pow) String() string {
	// Pow is right-associative; parenthesize a base that is itself a Pow.
	return childString(p.base, precAtom) + "^" + childString(p.exp, precPow)
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

// Call is the application of a FuncDef to argument expressions.
// Construct via CallOf.
type Call struct {
	def  *FuncDef
	args []Expr
}

// Def returns the function definition being applied.
func (c *Call) Def() *FuncDef { return c.def }

// Args returns the argument slice. Treat as read-only.
func (c *Call) Args() []Expr { return c.args }

func (c *Call) String() string {
	var b strings.Builder
	b.WriteString(c.def.Name())
	b.WriteByte('(')
	for i, a := range c.args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (c *Call) Equal(other Expr) bool {
	o, ok := other.(*Call)
	return ok && c.def == o.def && exprsEqual(c.args, o.args)
}

// exprsEqual reports element-wise structural equality of two node slices.
func exprsEqual(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// precedence returns the printing precedence of a node.
func precedence(e Expr) int {
	switch e.(type) {
	case *Add:
		return precAdd
	case *Mul:
		return precMul
	case *Pow:
		return precPow
	default:
		return precAtom
	}
}

// childString renders a child, parenthesizing when its precedence is
// looser than the context requires.
func childString(e Expr, want int) string {
	s := e.String()
	if precedence(e) < want {
		return "(" + s + ")"
	}
	return s
}

// naryString joins children of an n-ary node with sep, parenthesizing
// looser-precedence children.
func naryString(children []Expr, sep string, prec int) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = childString(c, prec)
	}
	return strings.Join(parts, sep)
}
