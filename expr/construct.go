package expr

import "math"

// N builds a numeric literal.
func N(v float64) Expr { return Num{val: v} }

// AddOf builds the sum of terms.
//
// Canonicalization (applied once, at construction):
//   - nested sums are flattened into one term list;
//   - numeric literals are folded into a single trailing constant,
//     omitted when it is zero;
//   - an empty sum is 0, a one-term sum is the term itself.
//
// Term order is otherwise preserved, so identical construction sequences
// yield identical trees (the property the compilation cache relies on).
func AddOf(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	c := 0.0
	for _, t := range terms {
		switch v := t.(type) {
		case Num:
			c += v.val
		case *Add:
			for _, inner := range v.terms {
				if n, ok := inner.(Num); ok {
					c += n.val
				} else {
					flat = append(flat, inner)
				}
			}
		default:
			flat = append(flat, t)
		}
	}
	if c != 0 {
		flat = append(flat, Num{val: c})
	}
	switch len(flat) {
	case 0:
		return Num{val: 0}
	case 1:
		return flat[0]
	}
	return &Add{terms: flat}
}

// MulOf builds the product of factors.
//
// Canonicalization (applied once, at construction):
//   - nested products are flattened into one factor list;
//   - numeric literals are folded into a single leading coefficient,
//     omitted when it is one; a zero coefficient collapses the whole
//     product to 0;
//   - an empty product is 1, a one-factor product is the factor itself.
func MulOf(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	c := 1.0
	for _, f := range factors {
		switch v := f.(type) {
		case Num:
			c *= v.val
		case *Mul:
			for _, inner := range v.factors {
				if n, ok := inner.(Num); ok {
					c *= n.val
				} else {
					flat = append(flat, inner)
				}
			}
		default:
			flat = append(flat, f)
		}
	}
	if c == 0 {
		return Num{val: 0}
	}
	if c != 1 {
		flat = append([]Expr{Num{val: c}}, flat...)
	}
	switch len(flat) {
	case 0:
		return Num{val: 1}
	case 1:
		return flat[0]
	}
	return &Mul{factors: flat}
}

// PowOf builds base^exp, folding the trivial cases: exp 1 yields base,
// exp 0 yields 1, and two literals fold via math.Pow.
func PowOf(base, exp Expr) Expr {
	if n, ok := exp.(Num); ok {
		switch n.val {
		case 1:
			return base
		case 0:
			return Num{val: 1}
		}
		if b, ok2 := base.(Num); ok2 {
			return Num{val: math.Pow(b.val, n.val)}
		}
	}
	return &Pow{base: base, exp: exp}
}

// CallOf builds the application of def to args. Panics if the argument
// count violates the definition's declared arity (programmer error).
func CallOf(def *FuncDef, args ...Expr) Expr {
	def.checkArity(len(args))
	cp := make([]Expr, len(args))
	copy(cp, args)
	return &Call{def: def, args: cp}
}

// Neg builds -e.
func Neg(e Expr) Expr { return MulOf(N(-1), e) }

// SubOf builds a - b.
func SubOf(a, b Expr) Expr { return AddOf(a, Neg(b)) }

// DivOf builds a / b as a * b^-1.
func DivOf(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

// Convenience wrappers over the built-in definitions.

// SinOf builds sin(e).
func SinOf(e Expr) Expr { return CallOf(Sin, e) }

// CosOf builds cos(e).
func CosOf(e Expr) Expr { return CallOf(Cos, e) }

// ExpOf builds exp(e).
func ExpOf(e Expr) Expr { return CallOf(Exp, e) }

// LogOf builds log(e) (natural logarithm).
func LogOf(e Expr) Expr { return CallOf(Log, e) }

// SqrtOf builds sqrt(e).
func SqrtOf(e Expr) Expr { return CallOf(Sqrt, e) }

// AbsOf builds abs(e).
func AbsOf(e Expr) Expr { return CallOf(Abs, e) }
