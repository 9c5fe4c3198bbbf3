package compile

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/katalvlaran/numexpr/expr"
)

// SigEntry is one entry of a call signature: a declared variable paired
// with its generated, collision-free source identifier.
type SigEntry struct {
	Sym   expr.Symbol
	Ident string
	// Name is the keyword name for named slots, "" for positional ones.
	Name string
}

// CallSignature is the ordered (symbol, identifier) list produced by the
// identifier allocator — one entry per VarSpec slot, in slot order.
type CallSignature []SigEntry

// String renders the signature as a parameter list, keyword slots last
// with their call-time names.
func (sig CallSignature) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, e := range sig {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.Ident)
		if e.Name != "" {
			b.WriteString("=" + e.Name)
		}
	}
	b.WriteByte(')')
	return b.String()
}

// goKeywords are never usable as generated identifiers.
var goKeywords = map[string]struct{}{
	"break": {}, "case": {}, "chan": {}, "const": {}, "continue": {},
	"default": {}, "defer": {}, "else": {}, "fallthrough": {}, "for": {},
	"func": {}, "go": {}, "goto": {}, "if": {}, "import": {},
	"interface": {}, "map": {}, "package": {}, "range": {}, "return": {},
	"select": {}, "struct": {}, "switch": {}, "type": {}, "var": {},
}

// reservedNames returns the full reserved set: keywords, predeclared
// identifiers, and the internal names the generator itself uses. Callers
// get a fresh copy they may extend.
func reservedNames() map[string]struct{} {
	out := make(map[string]struct{}, 64)
	for k := range goKeywords {
		out[k] = struct{}{}
	}
	for _, n := range []string{
		// predeclared types, constants, functions
		"any", "bool", "byte", "comparable", "complex64", "complex128",
		"error", "float32", "float64", "int", "int8", "int16", "int32",
		"int64", "rune", "string", "uint", "uint8", "uint16", "uint32",
		"uint64", "uintptr", "true", "false", "iota", "nil", "append",
		"cap", "clear", "close", "complex", "copy", "delete", "imag",
		"len", "make", "max", "min", "new", "panic", "print", "println",
		"real", "recover",
		// internal runtime names of the generated kernel
		"env", "args", "out", "consts", "funcs", "math",
	} {
		out[n] = struct{}{}
	}
	return out
}

// allocator hands out collision-free identifiers against a reserved set
// plus everything allocated earlier in the same pass. Deterministic: the
// same request sequence yields the same identifiers.
type allocator struct {
	taken map[string]struct{}
}

func newAllocator() *allocator {
	return &allocator{taken: reservedNames()}
}

// alloc maps a display name to a unique, valid identifier: mangle first,
// then suffix with an incrementing counter until free.
func (a *allocator) alloc(display string) string {
	base := mangle(display)
	ident := base
	for i := 2; ; i++ {
		if _, clash := a.taken[ident]; !clash {
			break
		}
		ident = base + "_" + strconv.Itoa(i)
	}
	a.taken[ident] = struct{}{}
	return ident
}

// mangle turns an arbitrary display name into a valid Go identifier:
// illegal runes become '_', a leading digit gains a "v" prefix, an empty
// result falls back to "v", and a keyword collision gains a '_' suffix.
func mangle(display string) string {
	var b strings.Builder
	for _, r := range display {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s == "" {
		s = "v"
	}
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsDigit(r) {
		s = "v" + s
	}
	if _, kw := goKeywords[s]; kw {
		s += "_"
	}
	return s
}

// allocateIdents produces the CallSignature for spec and identifiers for
// the constant bindings, in one deterministic pass: spec slots first (in
// slot order), constants second (in resolved order). The consts slice is
// updated in place with the allocated identifiers.
func allocateIdents(spec VarSpec, consts []constBinding) CallSignature {
	a := newAllocator()
	sig := make(CallSignature, spec.Len())
	for i, sl := range spec.Slots() {
		sig[i] = SigEntry{
			Sym:   sl.Symbol(),
			Ident: a.alloc(sl.Symbol().Name()),
			Name:  sl.Name(),
		}
	}
	for i := range consts {
		consts[i].ident = a.alloc(consts[i].sym.Name())
	}
	return sig
}
