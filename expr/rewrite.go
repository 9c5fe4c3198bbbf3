package expr

// DefaultExpandBudget bounds fixed-point definition expansion. Ten passes
// is far beyond any sane nesting depth while keeping a self-referential
// definition from spinning forever.
const DefaultExpandBudget = 10

// ExpandDefinitions rewrites every Call whose FuncDef carries an Expansion
// into its expanded form, repeating whole-tree passes until the tree
// stabilizes or maxPasses is exhausted — whichever comes first. A budget
// of zero or less selects DefaultExpandBudget.
//
// One pass expands bottom-up: arguments first, then the call itself, and
// the replacement produced within a pass is not re-expanded until the next
// pass. Purely functional — the input tree is never mutated.
func ExpandDefinitions(e Expr, maxPasses int) Expr {
	if maxPasses <= 0 {
		maxPasses = DefaultExpandBudget
	}
	cur := e
	for i := 0; i < maxPasses; i++ {
		next := expandOnce(cur)
		if next.Equal(cur) {
			return next
		}
		cur = next
	}
	return cur
}

// expandOnce performs a single bottom-up expansion pass.
func expandOnce(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expandOnce(t)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = expandOnce(f)
		}
		return MulOf(factors...)
	case *Pow:
		return PowOf(expandOnce(v.base), expandOnce(v.exp))
	case *Call:
		args := make([]Expr, len(v.args))
		for i, a := range v.args {
			args[i] = expandOnce(a)
		}
		if v.def.expand != nil {
			return v.def.expand(args)
		}
		return CallOf(v.def, args...)
	}
	return e
}
