package expr

import "sync/atomic"

// symCounter backs process-unique Symbol identities.
var symCounter atomic.Uint64

// symData is the shared identity record behind a Symbol handle.
type symData struct {
	id   uint64
	name string
}

// Symbol is a variable with identity. It is a small comparable handle:
// copy it freely, use it as a map key, compare it with ==.
//
// Identity is assigned by NewSymbol, not derived from the display name —
// two symbols created separately are distinct even if both are named "x".
// The zero Symbol is invalid; always construct via NewSymbol.
//
// Symbol implements Expr, so it can appear directly inside expression
// trees without a wrapper node.
type Symbol struct {
	d *symData
}

// NewSymbol creates a fresh symbol with the given display name.
// Each call yields a new identity.
func NewSymbol(name string) Symbol {
	return Symbol{d: &symData{id: symCounter.Add(1), name: name}}
}

// Name returns the display name the symbol was created with.
func (s Symbol) Name() string {
	if s.d == nil {
		return ""
	}
	return s.d.name
}

// ID returns the process-unique identity of the symbol.
// Stable for the lifetime of the process; not stable across restarts.
func (s Symbol) ID() uint64 {
	if s.d == nil {
		return 0
	}
	return s.d.id
}

// String renders the symbol as its display name.
func (s Symbol) String() string { return s.Name() }

// Equal reports identity equality: same Symbol handle, not same name.
func (s Symbol) Equal(other Expr) bool {
	o, ok := other.(Symbol)
	return ok && s.d == o.d
}
