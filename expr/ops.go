package expr

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// FreeSymbols returns the symbols occurring in e, deduplicated, in order
// of first appearance during a left-to-right depth-first walk. The order
// is deterministic for a given tree.
func FreeSymbols(e Expr) []Symbol {
	var out []Symbol
	seen := make(map[Symbol]struct{})
	var walk func(Expr)
	walk = func(node Expr) {
		switch v := node.(type) {
		case Symbol:
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		case *Add:
			for _, t := range v.terms {
				walk(t)
			}
		case *Mul:
			for _, f := range v.factors {
				walk(f)
			}
		case *Pow:
			walk(v.base)
			walk(v.exp)
		case *Call:
			for _, a := range v.args {
				walk(a)
			}
		}
	}
	walk(e)
	return out
}

// ContainsSymbol reports whether s occurs anywhere in e.
func ContainsSymbol(e Expr, s Symbol) bool {
	for _, f := range FreeSymbols(e) {
		if f == s {
			return true
		}
	}
	return false
}

// Subst returns e with every symbol in sub replaced by its mapped
// expression. Replacement is simultaneous (replacements are not themselves
// re-substituted) and rebuilds through the canonicalizing constructors.
// Returns e itself when sub is empty or touches nothing.
func Subst(e Expr, sub map[Symbol]Expr) Expr {
	if len(sub) == 0 {
		return e
	}
	switch v := e.(type) {
	case Num:
		return e
	case Symbol:
		if r, ok := sub[v]; ok {
			return r
		}
		return e
	case *Add:
		terms, changed := substAll(v.terms, sub)
		if !changed {
			return e
		}
		return AddOf(terms...)
	case *Mul:
		factors, changed := substAll(v.factors, sub)
		if !changed {
			return e
		}
		return MulOf(factors...)
	case *Pow:
		b := Subst(v.base, sub)
		x := Subst(v.exp, sub)
		if b == v.base && x == v.exp {
			return e
		}
		return PowOf(b, x)
	case *Call:
		args, changed := substAll(v.args, sub)
		if !changed {
			return e
		}
		return CallOf(v.def, args...)
	}
	return e
}

// substAll maps Subst over a node slice, reporting whether anything changed.
func substAll(nodes []Expr, sub map[Symbol]Expr) ([]Expr, bool) {
	out := make([]Expr, len(nodes))
	changed := false
	for i, n := range nodes {
		out[i] = Subst(n, sub)
		if out[i] != n {
			changed = true
		}
	}
	return out, changed
}

// Structural hash tags, one per node kind.
const (
	hashNum byte = iota + 1
	hashSym
	hashAdd
	hashMul
	hashPow
	hashCall
)

// Hash returns a structural FNV-1a fingerprint of e. Trees for which
// Equal holds hash identically; symbols and function definitions hash by
// identity, so the fingerprint is stable within a process (which is all
// the in-process compilation cache needs).
func Hash(e Expr) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	emit := func(tag byte, v uint64) {
		_, _ = h.Write([]byte{tag})
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	var walk func(Expr)
	walk = func(node Expr) {
		switch v := node.(type) {
		case Num:
			emit(hashNum, math.Float64bits(v.val))
		case Symbol:
			emit(hashSym, v.ID())
		case *Add:
			emit(hashAdd, uint64(len(v.terms)))
			for _, t := range v.terms {
				walk(t)
			}
		case *Mul:
			emit(hashMul, uint64(len(v.factors)))
			for _, f := range v.factors {
				walk(f)
			}
		case *Pow:
			emit(hashPow, 2)
			walk(v.base)
			walk(v.exp)
		case *Call:
			emit(hashCall, v.def.id)
			emit(hashCall, uint64(len(v.args)))
			for _, a := range v.args {
				walk(a)
			}
		}
	}
	walk(e)
	return h.Sum64()
}

// Calls returns every *Call node in e, in depth-first pre-order, including
// calls nested inside other calls' arguments.
func Calls(e Expr) []*Call {
	var out []*Call
	var walk func(Expr)
	walk = func(node Expr) {
		switch v := node.(type) {
		case *Add:
			for _, t := range v.terms {
				walk(t)
			}
		case *Mul:
			for _, f := range v.factors {
				walk(f)
			}
		case *Pow:
			walk(v.base)
			walk(v.exp)
		case *Call:
			out = append(out, v)
			for _, a := range v.args {
				walk(a)
			}
		}
	}
	walk(e)
	return out
}
