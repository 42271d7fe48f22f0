package rewrite

import (
	"fmt"
	"strings"
)

// Term is an immutable, non-empty word over symbols, uniqued by content.
// Two terms compare equal iff their symbol sequences are identical.
//
// A Term is only ever produced by Context.intern; callers build words via
// MutableTerm and hand them to the Context to get back a Term.
type Term struct {
	symbols []Symbol
	hash    uint64
}

// termOf builds an unshared Term value from a symbol slice already known
// to be owned (not aliased elsewhere). Used internally by Context.intern.
func termOf(symbols []Symbol) Term {
	if len(symbols) == 0 {
		panic("rewrite: empty term")
	}
	h := uint64(14695981039346656037) // fnv offset basis, chained per symbol
	for _, s := range symbols {
		h ^= s.Hash()
		h *= 1099511628211
	}
	return Term{symbols: symbols, hash: h}
}

// Len returns the number of symbols in the term.
func (t Term) Len() int { return len(t.symbols) }

// At returns the symbol at index i.
func (t Term) At(i int) Symbol { return t.symbols[i] }

// Symbols returns the term's underlying symbol slice. Callers must treat it
// as read-only; Term is supposed to be immutable.
func (t Term) Symbols() []Symbol { return t.symbols }

// Hash returns the term's content hash, used for interning (Context.intern
// and its live set) and when hashing a ConcreteTypeRef's substitutions.
func (t Term) Hash() uint64 { return t.hash }

// Equal reports whether two terms have identical symbol sequences.
func (t Term) Equal(other Term) bool {
	if t.hash != other.hash || len(t.symbols) != len(other.symbols) {
		return false
	}
	for i := range t.symbols {
		if !t.symbols[i].Equal(other.symbols[i]) {
			return false
		}
	}
	return true
}

func (t Term) String() string {
	parts := make([]string, len(t.symbols))
	for i, s := range t.symbols {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// RootProtocols returns the set of protocols constraining the term's root
// symbol: a Protocol symbol roots exactly itself, an AssociatedType symbol
// roots the ancestry of its declaring protocol, and a GenericParam (or
// Name, on still-unresolved input) roots nothing — an unconstrained domain
// that is compatible with any protocol's domain.
//
// OPEN QUESTION: the original source's Symbol::getRootProtocols was not
// present in the retrieved original_source tree; this reconstruction is
// grounded only on its caller, RewriteSystem::verify.
func (t Term) RootProtocols(protocols ProtocolGraph) []ProtocolID {
	if len(t.symbols) == 0 {
		return nil
	}
	switch root := t.symbols[0]; root.kind {
	case Protocol:
		return []ProtocolID{root.protocol}
	case AssociatedType:
		return protocols.RootProtocols(root.protocol)
	default:
		return nil
	}
}

// rootProtocolsEqual compares two root-protocol sets using xtgo/set's
// sorted-slice set algebra instead of allocating a hash set per rule: the
// two slices are sorted copies, and Invariant 1 holds iff their symmetric
// difference is empty.
func rootProtocolsEqual(a, b []ProtocolID) bool {
	return setSymmetricDifferenceEmpty(a, b)
}

func fmtProtocolIDs(ids []ProtocolID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return fmt.Sprintf("%v", parts)
}
