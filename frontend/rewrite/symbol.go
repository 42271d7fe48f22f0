package rewrite

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// ProtocolID names a protocol known to the owning ProtocolGraph.
//
// The rewrite core never resolves a ProtocolID itself; it only ever
// compares, hashes and forwards it to the ProtocolGraph collaborator.
type ProtocolID string

// GenericParamID addresses a generic parameter by its declaration depth
// and index, the same pair the front end uses to name `τ_d_i`.
type GenericParamID struct {
	Depth int
	Index int
}

func (g GenericParamID) String() string {
	return fmt.Sprintf("τ_%d_%d", g.Depth, g.Index)
}

// ConcreteTypeRef is a minimal stand-in for a concrete type carrying
// substitutions into generic parameter paths. Resolving a name to an
// actual type representation is a front-end concern, out of scope for
// this package; here we only need enough structure to walk and
// re-simplify the embedded Substitutions.
type ConcreteTypeRef struct {
	Name          string
	Substitutions []Term
}

func (c ConcreteTypeRef) String() string {
	if len(c.Substitutions) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.Substitutions))
	for i, t := range c.Substitutions {
		parts[i] = t.String()
	}
	return c.Name + "<" + strings.Join(parts, ", ") + ">"
}

func (c ConcreteTypeRef) hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(c.Name))
	for _, t := range c.Substitutions {
		var buf [8]byte
		putUint64(buf[:], t.Hash())
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func (c ConcreteTypeRef) equal(other ConcreteTypeRef) bool {
	if c.Name != other.Name || len(c.Substitutions) != len(other.Substitutions) {
		return false
	}
	for i := range c.Substitutions {
		if !c.Substitutions[i].Equal(other.Substitutions[i]) {
			return false
		}
	}
	return true
}

// Kind tags a Symbol's variant, mirroring the Swift requirement machine's
// Symbol::Kind enumeration.
type Kind uint8

const (
	// Name identifies an as-yet-unresolved associated type by name only;
	// only ever appears on the left of a rule, per Verify's structural audit.
	Name Kind = iota
	// Protocol names a protocol conformance requirement.
	Protocol
	// GenericParam names a generic parameter; only at position 0 of a term.
	GenericParam
	// AssociatedType names an associated type resolved against a protocol.
	AssociatedType
	// Layout constrains a term to a memory layout; only at the last position.
	Layout
	// Superclass requires a term to be a subclass of a concrete type.
	Superclass
	// ConcreteType equates a term with a fully concrete type.
	ConcreteType
)

func (k Kind) String() string {
	switch k {
	case Name:
		return "Name"
	case Protocol:
		return "Protocol"
	case GenericParam:
		return "GenericParam"
	case AssociatedType:
		return "AssociatedType"
	case Layout:
		return "Layout"
	case Superclass:
		return "Superclass"
	case ConcreteType:
		return "ConcreteType"
	default:
		panic(fmt.Sprintf("Kind.String: unhandled kind %d", uint8(k)))
	}
}

// isSuperclassOrConcreteType mirrors Symbol::isSuperclassOrConcreteType in
// the original source, used by verify's structural checks.
func (k Kind) isSuperclassOrConcreteType() bool {
	return k == Superclass || k == ConcreteType
}

// Symbol is an atom of a Term: a value-equal, hashable tagged variant with
// kind-specific payload. Symbols are interned externally by whichever
// collaborator builds the initial requirement terms; the rewrite core only
// ever compares and hashes them.
type Symbol struct {
	kind Kind

	// name holds the payload for Name and AssociatedType (the associated
	// type's own identifier).
	name string

	// protocol holds the payload for Protocol and AssociatedType (the
	// protocol an associated type is declared on).
	protocol ProtocolID

	// param holds the payload for GenericParam.
	param GenericParamID

	// layout holds the payload for Layout, encoded as an opaque
	// diagnostic string (e.g. "_Trivial", "_Class") since the concrete
	// layout-constraint vocabulary is a front-end concern.
	layout string

	// concrete holds the payload for Superclass and ConcreteType.
	concrete ConcreteTypeRef
}

// NewNameSymbol builds a Name symbol for an unresolved associated type.
func NewNameSymbol(name string) Symbol {
	return Symbol{kind: Name, name: name}
}

// NewProtocolSymbol builds a Protocol symbol.
func NewProtocolSymbol(p ProtocolID) Symbol {
	return Symbol{kind: Protocol, protocol: p}
}

// NewGenericParamSymbol builds a GenericParam symbol.
func NewGenericParamSymbol(id GenericParamID) Symbol {
	return Symbol{kind: GenericParam, param: id}
}

// NewAssociatedTypeSymbol builds an AssociatedType symbol resolved against protocol p.
func NewAssociatedTypeSymbol(p ProtocolID, name string) Symbol {
	return Symbol{kind: AssociatedType, protocol: p, name: name}
}

// NewLayoutSymbol builds a Layout symbol.
func NewLayoutSymbol(constraint string) Symbol {
	return Symbol{kind: Layout, layout: constraint}
}

// NewSuperclassSymbol builds a Superclass symbol.
func NewSuperclassSymbol(ref ConcreteTypeRef) Symbol {
	return Symbol{kind: Superclass, concrete: ref}
}

// NewConcreteTypeSymbol builds a ConcreteType symbol.
func NewConcreteTypeSymbol(ref ConcreteTypeRef) Symbol {
	return Symbol{kind: ConcreteType, concrete: ref}
}

func (s Symbol) Kind() Kind { return s.kind }

// Protocol returns the payload protocol for Protocol/AssociatedType symbols.
func (s Symbol) Protocol() ProtocolID { return s.protocol }

// GenericParam returns the payload for a GenericParam symbol.
func (s Symbol) GenericParam() GenericParamID { return s.param }

// Name returns the payload name for Name/AssociatedType symbols.
func (s Symbol) Name() string { return s.name }

// ConcreteType returns the payload for Superclass/ConcreteType symbols.
func (s Symbol) ConcreteType() ConcreteTypeRef { return s.concrete }

// Equal reports whether two symbols are value-equal.
func (s Symbol) Equal(other Symbol) bool {
	if s.kind != other.kind {
		return false
	}
	switch s.kind {
	case Name:
		return s.name == other.name
	case Protocol:
		return s.protocol == other.protocol
	case GenericParam:
		return s.param == other.param
	case AssociatedType:
		return s.protocol == other.protocol && s.name == other.name
	case Layout:
		return s.layout == other.layout
	case Superclass, ConcreteType:
		return s.concrete.equal(other.concrete)
	default:
		panic(fmt.Sprintf("Symbol.Equal: unhandled kind %d", uint8(s.kind)))
	}
}

// Hash returns a content hash suitable for interning and map keys.
func (s Symbol) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte{byte(s.kind)})
	switch s.kind {
	case Name:
		_, _ = h.Write([]byte(s.name))
	case Protocol:
		_, _ = h.Write([]byte(s.protocol))
	case GenericParam:
		_, _ = h.Write([]byte(fmt.Sprintf("%d/%d", s.param.Depth, s.param.Index)))
	case AssociatedType:
		_, _ = h.Write([]byte(s.protocol))
		_, _ = h.Write([]byte("."))
		_, _ = h.Write([]byte(s.name))
	case Layout:
		_, _ = h.Write([]byte(s.layout))
	case Superclass, ConcreteType:
		var buf [8]byte
		putUint64(buf[:], s.concrete.hash())
		_, _ = h.Write(buf[:])
	default:
		panic(fmt.Sprintf("Symbol.Hash: unhandled kind %d", uint8(s.kind)))
	}
	return h.Sum64()
}

// key is the canonical string used as a Trie child key. Unlike Hash, it
// spells out the payload for every kind except Superclass and
// ConcreteType, whose keys are the 64-bit content hash of their
// ConcreteTypeRef, so two distinct concrete payloads with equal hashes
// share a key.
func (s Symbol) key() string {
	switch s.kind {
	case Name:
		return "N:" + s.name
	case Protocol:
		return "P:" + string(s.protocol)
	case GenericParam:
		return fmt.Sprintf("G:%d:%d", s.param.Depth, s.param.Index)
	case AssociatedType:
		// len(protocol) is prefixed so a protocol/name pair can't be
		// confused with a different split of the same concatenated bytes
		// (e.g. protocol="Foo:Bar",name="Assoc" vs protocol="Foo",name="Bar:Assoc").
		return fmt.Sprintf("A:%d:%s:%s", len(s.protocol), string(s.protocol), s.name)
	case Layout:
		return "L:" + s.layout
	case Superclass:
		return fmt.Sprintf("S:%x", s.concrete.hash())
	case ConcreteType:
		return fmt.Sprintf("C:%x", s.concrete.hash())
	default:
		panic(fmt.Sprintf("Symbol.key: unhandled kind %d", uint8(s.kind)))
	}
}

func (s Symbol) String() string {
	switch s.kind {
	case Name:
		return s.name
	case Protocol:
		return "[" + string(s.protocol) + "]"
	case GenericParam:
		return s.param.String()
	case AssociatedType:
		return "[" + string(s.protocol) + "]" + s.name
	case Layout:
		return "[layout: " + s.layout + "]"
	case Superclass:
		return "[superclass: " + s.concrete.String() + "]"
	case ConcreteType:
		return "[concrete: " + s.concrete.String() + "]"
	default:
		panic(fmt.Sprintf("Symbol.String: unhandled kind %d", uint8(s.kind)))
	}
}

// transformConcreteSubstitutions rebuilds a Superclass/ConcreteType symbol
// with each embedded substitution replaced by f(substitution); other kinds
// are returned unchanged. This is the payload-level primitive behind
// RewriteSystem.SimplifySubstitutionsInSuperclassOrConcreteSymbol.
func (s Symbol) transformConcreteSubstitutions(f func(Term) Term) Symbol {
	if s.kind != Superclass && s.kind != ConcreteType {
		return s
	}
	if len(s.concrete.Substitutions) == 0 {
		return s
	}
	newSubs := make([]Term, len(s.concrete.Substitutions))
	changed := false
	for i, t := range s.concrete.Substitutions {
		newSubs[i] = f(t)
		changed = changed || !newSubs[i].Equal(t)
	}
	if !changed {
		return s
	}
	cp := s
	cp.concrete = ConcreteTypeRef{Name: s.concrete.Name, Substitutions: newSubs}
	return cp
}

func putUint64(buf []byte, v uint64) {
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
}
