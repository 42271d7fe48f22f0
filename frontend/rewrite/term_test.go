package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermOfPanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { termOf(nil) })
}

func TestTermEqual(t *testing.T) {
	a := termOf([]Symbol{NewNameSymbol("a"), NewNameSymbol("b")})
	b := termOf([]Symbol{NewNameSymbol("a"), NewNameSymbol("b")})
	c := termOf([]Symbol{NewNameSymbol("a"), NewNameSymbol("c")})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, "a.b", a.String())
}

func TestRootProtocolsProtocolRoot(t *testing.T) {
	term := termOf([]Symbol{NewProtocolSymbol("Sequence"), NewNameSymbol("Element")})
	graph := NewStaticProtocolGraph(nil, nil)
	assert.Equal(t, []ProtocolID{"Sequence"}, term.RootProtocols(graph))
}

func TestRootProtocolsAssociatedTypeRootDelegatesToGraph(t *testing.T) {
	term := termOf([]Symbol{NewAssociatedTypeSymbol("Collection", "Element")})
	graph := NewStaticProtocolGraph(nil, map[ProtocolID][]ProtocolID{
		"Collection": {"Sequence"},
	})
	roots := term.RootProtocols(graph)
	require.Len(t, roots, 2)
	assert.ElementsMatch(t, []ProtocolID{"Collection", "Sequence"}, roots)
}

func TestRootProtocolsGenericParamRootIsUnconstrained(t *testing.T) {
	term := termOf([]Symbol{NewGenericParamSymbol(GenericParamID{Depth: 0, Index: 0})})
	graph := NewStaticProtocolGraph(nil, nil)
	assert.Nil(t, term.RootProtocols(graph))
}

func TestRootProtocolsEqualIgnoresOrderAndDuplicates(t *testing.T) {
	assert.True(t, rootProtocolsEqual(nil, nil))
	assert.True(t, rootProtocolsEqual(
		[]ProtocolID{"A", "B"},
		[]ProtocolID{"B", "A"},
	))
	assert.True(t, rootProtocolsEqual(
		[]ProtocolID{"A", "B", "A"},
		[]ProtocolID{"B", "A"},
	))
	assert.False(t, rootProtocolsEqual(
		[]ProtocolID{"A"},
		[]ProtocolID{"A", "B"},
	))
	assert.False(t, rootProtocolsEqual(nil, []ProtocolID{"A"}))
}
