package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolEqual(t *testing.T) {
	a := NewNameSymbol("T")
	b := NewNameSymbol("T")
	c := NewNameSymbol("U")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	p1 := NewProtocolSymbol("Sequence")
	p2 := NewProtocolSymbol("Sequence")
	p3 := NewProtocolSymbol("Collection")
	assert.True(t, p1.Equal(p2))
	assert.False(t, p1.Equal(p3))

	assoc1 := NewAssociatedTypeSymbol("Sequence", "Element")
	assoc2 := NewAssociatedTypeSymbol("Sequence", "Element")
	assoc3 := NewAssociatedTypeSymbol("Collection", "Element")
	assert.True(t, assoc1.Equal(assoc2))
	assert.False(t, assoc1.Equal(assoc3))
	assert.False(t, a.Equal(assoc1))
}

func TestSymbolHashStableAndDistinguishing(t *testing.T) {
	a := NewGenericParamSymbol(GenericParamID{Depth: 0, Index: 1})
	b := NewGenericParamSymbol(GenericParamID{Depth: 0, Index: 1})
	c := NewGenericParamSymbol(GenericParamID{Depth: 1, Index: 1})

	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestConcreteTypeRefSubstitutionsDistinguishHash(t *testing.T) {
	sub1 := termOf([]Symbol{NewNameSymbol("Int")})
	sub2 := termOf([]Symbol{NewNameSymbol("String")})

	withSub1 := NewConcreteTypeSymbol(ConcreteTypeRef{Name: "Array", Substitutions: []Term{sub1}})
	withSub2 := NewConcreteTypeSymbol(ConcreteTypeRef{Name: "Array", Substitutions: []Term{sub2}})

	assert.False(t, withSub1.Equal(withSub2))
	assert.NotEqual(t, withSub1.Hash(), withSub2.Hash())
	assert.NotEqual(t, withSub1.key(), withSub2.key())
}

func TestKindIsSuperclassOrConcreteType(t *testing.T) {
	assert.True(t, Superclass.isSuperclassOrConcreteType())
	assert.True(t, ConcreteType.isSuperclassOrConcreteType())
	assert.False(t, Protocol.isSuperclassOrConcreteType())
	assert.False(t, Name.isSuperclassOrConcreteType())
}

func TestTransformConcreteSubstitutions(t *testing.T) {
	inner := termOf([]Symbol{NewNameSymbol("T")})
	sym := NewSuperclassSymbol(ConcreteTypeRef{Name: "Base", Substitutions: []Term{inner}})

	replaced := termOf([]Symbol{NewNameSymbol("Replaced")})
	out := sym.transformConcreteSubstitutions(func(Term) Term { return replaced })

	assert.Equal(t, "Replaced", out.ConcreteType().Substitutions[0].String())

	// Non-concrete kinds are passed through unchanged.
	name := NewNameSymbol("T")
	assert.True(t, name.Equal(name.transformConcreteSubstitutions(func(Term) Term { return replaced })))
}
