package compile

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/numexpr/expr"
)

// VarSlot is one entry of a variable spec: a positional variable, or a
// named variable fillable only by keyword at call time.
type VarSlot struct {
	name string // "" for positional slots
	sym  expr.Symbol
}

// PositionalSlot declares a positional variable.
func PositionalSlot(s expr.Symbol) VarSlot { return VarSlot{sym: s} }

// NamedSlot declares a keyword variable with the given call-time name.
func NamedSlot(name string, s expr.Symbol) VarSlot {
	return VarSlot{name: name, sym: s}
}

// Named reports whether the slot is a keyword slot.
func (v VarSlot) Named() bool { return v.name != "" }

// Name returns the keyword name, or "" for a positional slot.
func (v VarSlot) Name() string { return v.name }

// Symbol returns the slot's symbol.
func (v VarSlot) Symbol() expr.Symbol { return v.sym }

// VarSpec is the canonical ordered variable declaration every downstream
// component consumes. Construct via NormalizeVars; a VarSpec is immutable
// once built and its symbols are pairwise distinct.
type VarSpec struct {
	slots []VarSlot
}

// Len returns the number of declared variables.
func (s VarSpec) Len() int { return len(s.slots) }

// Slots returns the ordered slot list. Treat as read-only.
func (s VarSpec) Slots() []VarSlot { return s.slots }

// All returns the full ordered symbol tuple.
func (s VarSpec) All() []expr.Symbol {
	out := make([]expr.Symbol, len(s.slots))
	for i, sl := range s.slots {
		out[i] = sl.sym
	}
	return out
}

// Keyed returns the named subset, in declaration order.
func (s VarSpec) Keyed() []VarSlot {
	var out []VarSlot
	for _, sl := range s.slots {
		if sl.Named() {
			out = append(out, sl)
		}
	}
	return out
}

// NormalizeVars turns a user-supplied variable declaration into a
// canonical VarSpec. Accepted forms:
//
//   - expr.Symbol             — a single positional variable
//   - VarSlot / VarSpec       — passed through (and re-validated)
//   - []expr.Symbol           — positional variables in order
//   - []VarSlot               — slots in order
//   - []any                   — a mix of symbols, VarSlots, and small
//     map[string]expr.Symbol named-slot entries (sorted by name)
//   - map[int]expr.Symbol     — positional, keys must run 0..k contiguously
//   - map[string]expr.Symbol  — all named, ordered by name
//   - map[any]expr.Symbol     — integer keys place positional slots (again
//     contiguous from 0), string keys append named slots ordered by name
//
// Fails with ErrInvalidSpec on a duplicate symbol, a gap in the integer
// keys, or an element of any other type. Pure: no side effects.
func NormalizeVars(spec any) (VarSpec, error) {
	var slots []VarSlot
	switch v := spec.(type) {
	case nil:
		return VarSpec{}, fmt.Errorf("nil spec: %w", ErrInvalidSpec)
	case VarSpec:
		slots = v.slots
	case VarSlot:
		slots = []VarSlot{v}
	case expr.Symbol:
		slots = []VarSlot{PositionalSlot(v)}
	case []expr.Symbol:
		slots = make([]VarSlot, len(v))
		for i, s := range v {
			slots[i] = PositionalSlot(s)
		}
	case []VarSlot:
		slots = v
	case []any:
		for _, el := range v {
			switch e := el.(type) {
			case expr.Symbol:
				slots = append(slots, PositionalSlot(e))
			case VarSlot:
				slots = append(slots, e)
			case map[string]expr.Symbol:
				slots = append(slots, namedSlotsOf(e)...)
			default:
				return VarSpec{}, fmt.Errorf("element %T: %w", el, ErrInvalidSpec)
			}
		}
	case map[int]expr.Symbol:
		anyKeyed := make(map[any]expr.Symbol, len(v))
		for k, s := range v {
			anyKeyed[k] = s
		}
		var err error
		if slots, err = slotsFromMapping(anyKeyed); err != nil {
			return VarSpec{}, err
		}
	case map[string]expr.Symbol:
		slots = namedSlotsOf(v)
	case map[any]expr.Symbol:
		var err error
		if slots, err = slotsFromMapping(v); err != nil {
			return VarSpec{}, err
		}
	default:
		return VarSpec{}, fmt.Errorf("spec type %T: %w", spec, ErrInvalidSpec)
	}

	// Symbols must be pairwise distinct across all positions.
	seen := make(map[expr.Symbol]int, len(slots))
	for i, sl := range slots {
		if sl.sym == (expr.Symbol{}) {
			return VarSpec{}, fmt.Errorf("slot %d has zero symbol: %w", i, ErrInvalidSpec)
		}
		if j, dup := seen[sl.sym]; dup {
			return VarSpec{}, fmt.Errorf("symbol %q at positions %d and %d: %w",
				sl.sym.Name(), j, i, ErrInvalidSpec)
		}
		seen[sl.sym] = i
	}

	out := make([]VarSlot, len(slots))
	copy(out, slots)
	return VarSpec{slots: out}, nil
}

// namedSlotsOf converts a name→symbol mapping into named slots ordered by
// name, the only deterministic order a Go map offers.
func namedSlotsOf(m map[string]expr.Symbol) []VarSlot {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]VarSlot, len(names))
	for i, n := range names {
		out[i] = NamedSlot(n, m[n])
	}
	return out
}

// slotsFromMapping handles the mixed int/string-keyed mapping form:
// integer keys place positional slots and must form a contiguous 0..k run;
// string keys append named slots ordered by name.
func slotsFromMapping(m map[any]expr.Symbol) ([]VarSlot, error) {
	positional := make(map[int]expr.Symbol)
	named := make(map[string]expr.Symbol)
	for k, s := range m {
		switch key := k.(type) {
		case int:
			positional[key] = s
		case string:
			named[key] = s
		default:
			return nil, fmt.Errorf("key %v (%T): %w", k, k, ErrInvalidSpec)
		}
	}
	slots := make([]VarSlot, 0, len(m))
	for i := 0; i < len(positional); i++ {
		s, ok := positional[i]
		if !ok {
			return nil, fmt.Errorf("integer keys must be contiguous from 0, missing %d: %w",
				i, ErrInvalidSpec)
		}
		slots = append(slots, PositionalSlot(s))
	}
	return append(slots, namedSlotsOf(named)...), nil
}
