package expr

import (
	"fmt"
	"math"
)

// Eval evaluates e at the point given by env (symbol → value).
//
// Function calls prefer the definition's numeric implementation; a
// definition with only an expansion is expanded on the fly. Returns
// ErrFreeSymbol when a symbol is missing from env and ErrUnknownFunction
// when a call has neither implementation nor expansion.
//
// Eval is the reference semantics the compiler is tested against: a
// compiled callable must agree with Eval at every finite point.
func Eval(e Expr, env map[Symbol]float64) (float64, error) {
	switch v := e.(type) {
	case Num:
		return v.val, nil
	case Symbol:
		val, ok := env[v]
		if !ok {
			return 0, fmt.Errorf("%q: %w", v.Name(), ErrFreeSymbol)
		}
		return val, nil
	case *Add:
		sum := 0.0
		for _, t := range v.terms {
			x, err := Eval(t, env)
			if err != nil {
				return 0, err
			}
			sum += x
		}
		return sum, nil
	case *Mul:
		prod := 1.0
		for _, f := range v.factors {
			x, err := Eval(f, env)
			if err != nil {
				return 0, err
			}
			prod *= x
		}
		return prod, nil
	case *Pow:
		b, err := Eval(v.base, env)
		if err != nil {
			return 0, err
		}
		x, err := Eval(v.exp, env)
		if err != nil {
			return 0, err
		}
		return math.Pow(b, x), nil
	case *Call:
		if v.def.impl != nil {
			args := make([]float64, len(v.args))
			for i, a := range v.args {
				x, err := Eval(a, env)
				if err != nil {
					return 0, err
				}
				args[i] = x
			}
			return v.def.impl(args...), nil
		}
		if v.def.expand != nil {
			return Eval(v.def.expand(v.args), env)
		}
		return 0, fmt.Errorf("%q: %w", v.def.name, ErrUnknownFunction)
	}
	return 0, fmt.Errorf("unhandled node %T: %w", e, ErrUnknownFunction)
}
