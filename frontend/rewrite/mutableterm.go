package rewrite

import "strings"

// MutableTerm is a non-empty mutable word over symbols. Simplification
// and rule orientation operate on MutableTerm, as do HomotopyGenerator
// basepoints; a Term is only materialised (via Context.intern) once a word
// is ready to be stored as a Rule side or a concrete-type substitution.
type MutableTerm struct {
	symbols []Symbol
}

// NewMutableTerm copies symbols into a fresh MutableTerm.
func NewMutableTerm(symbols ...Symbol) MutableTerm {
	if len(symbols) == 0 {
		panic("rewrite: empty term")
	}
	cp := make([]Symbol, len(symbols))
	copy(cp, symbols)
	return MutableTerm{symbols: cp}
}

// MutableTermFrom copies the symbols of an interned Term into a fresh
// MutableTerm, so that simplification never mutates the interned original.
func MutableTermFrom(t Term) MutableTerm {
	return NewMutableTerm(t.symbols...)
}

// Len returns the number of symbols in the term.
func (t MutableTerm) Len() int { return len(t.symbols) }

// At returns the symbol at index i.
func (t MutableTerm) At(i int) Symbol { return t.symbols[i] }

// Symbols returns the underlying slice. Callers splicing it directly bypass
// Splice's bookkeeping and should not do so outside this package.
func (t MutableTerm) Symbols() []Symbol { return t.symbols }

// Empty reports whether the term has no symbols. A well-formed MutableTerm
// is never empty; Empty exists for the simplification edge cases and for
// prefix/suffix slicing during Dump.
func (t MutableTerm) Empty() bool { return len(t.symbols) == 0 }

func (t MutableTerm) String() string {
	parts := make([]string, len(t.symbols))
	for i, s := range t.symbols {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// Copy returns an independent copy of the term.
func (t MutableTerm) Copy() MutableTerm {
	cp := make([]Symbol, len(t.symbols))
	copy(cp, t.symbols)
	return MutableTerm{symbols: cp}
}

// Slice returns the subterm [from, to) as a fresh MutableTerm.
func (t MutableTerm) Slice(from, to int) MutableTerm {
	cp := make([]Symbol, to-from)
	copy(cp, t.symbols[from:to])
	return MutableTerm{symbols: cp}
}

// Append mutates t by appending other's symbols.
func (t *MutableTerm) Append(other MutableTerm) {
	t.symbols = append(t.symbols, other.symbols...)
}

// Splice replaces the subterm [from, to) with replacement, in place.
// Equivalent to the original source's MutableTerm::rewriteSubTerm.
func (t *MutableTerm) Splice(from, to int, replacement []Symbol) {
	tail := append([]Symbol{}, t.symbols[to:]...)
	t.symbols = append(t.symbols[:from:from], replacement...)
	t.symbols = append(t.symbols, tail...)
}

// Intern materialises this word as an immutable, uniqued Term.
func (t MutableTerm) Intern(ctx *Context) Term {
	return ctx.intern(t.symbols)
}

// Compare implements the reduction order: a total, well-founded order over
// words parameterised by the protocol precedence graph. Longer words
// are always greater than shorter ones (so rewriting never lengthens a
// term); ties between equal-length words fall back to a position-by-
// position lexicographic comparison of symbols, which itself consults the
// protocol graph when comparing two Protocol symbols.
//
// Returns -1, 0 or +1. `u.Compare(v) > 0` means rewriting from u to v is
// permitted.
func (t MutableTerm) Compare(other MutableTerm, protocols ProtocolGraph) int {
	if len(t.symbols) != len(other.symbols) {
		if len(t.symbols) > len(other.symbols) {
			return 1
		}
		return -1
	}
	for i := range t.symbols {
		if c := compareSymbols(t.symbols[i], other.symbols[i], protocols); c != 0 {
			return c
		}
	}
	return 0
}

// kindOrder fixes a total order across symbol kinds used to break ties
// when comparing symbols of different kinds. The relative order of kinds
// has no semantic meaning beyond determinism; what matters is that it stays
// fixed for the lifetime of a RewriteSystem, so the comparator stays
// reentrant and testable against synthetic protocol graphs rather than a
// package-global order.
func kindOrder(k Kind) int {
	switch k {
	case GenericParam:
		return 0
	case Name:
		return 1
	case AssociatedType:
		return 2
	case Protocol:
		return 3
	case Superclass:
		return 4
	case ConcreteType:
		return 5
	case Layout:
		return 6
	default:
		return 7
	}
}

func compareSymbols(a, b Symbol, protocols ProtocolGraph) int {
	if a.kind != b.kind {
		return cmpInt(kindOrder(a.kind), kindOrder(b.kind))
	}
	switch a.kind {
	case Name:
		return cmpString(a.name, b.name)
	case GenericParam:
		if a.param.Depth != b.param.Depth {
			return cmpInt(a.param.Depth, b.param.Depth)
		}
		return cmpInt(a.param.Index, b.param.Index)
	case Protocol:
		return cmpInt(protocols.Precedence(a.protocol), protocols.Precedence(b.protocol))
	case AssociatedType:
		if a.protocol != b.protocol {
			return cmpInt(protocols.Precedence(a.protocol), protocols.Precedence(b.protocol))
		}
		return cmpString(a.name, b.name)
	case Layout:
		return cmpString(a.layout, b.layout)
	case Superclass, ConcreteType:
		return cmpUint64(a.concrete.hash(), b.concrete.hash())
	default:
		return 0
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
