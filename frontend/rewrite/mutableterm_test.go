package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutableTermNewPanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { NewMutableTerm() })
}

func TestMutableTermSplice(t *testing.T) {
	term := NewMutableTerm(NewNameSymbol("a"), NewNameSymbol("b"), NewNameSymbol("c"), NewNameSymbol("d"))
	term.Splice(1, 3, []Symbol{NewNameSymbol("X")})
	assert.Equal(t, "a.X.d", term.String())
}

func TestMutableTermCompareLengthDominates(t *testing.T) {
	graph := NewStaticProtocolGraph(nil, nil)
	short := NewMutableTerm(NewNameSymbol("a"))
	long := NewMutableTerm(NewNameSymbol("a"), NewNameSymbol("b"))

	assert.Equal(t, 1, long.Compare(short, graph))
	assert.Equal(t, -1, short.Compare(long, graph))
}

func TestMutableTermCompareTiesOnKindOrder(t *testing.T) {
	graph := NewStaticProtocolGraph(nil, nil)
	genericParam := NewMutableTerm(NewGenericParamSymbol(GenericParamID{Depth: 0, Index: 0}))
	name := NewMutableTerm(NewNameSymbol("T"))

	// kindOrder fixes GenericParam below Name; the exact ordering is
	// arbitrary but must be consistent and antisymmetric.
	cmp := genericParam.Compare(name, graph)
	require.NotEqual(t, 0, cmp)
	assert.Equal(t, -cmp, name.Compare(genericParam, graph))
}

func TestMutableTermCompareProtocolUsesPrecedence(t *testing.T) {
	graph := NewStaticProtocolGraph([]ProtocolID{"Sequence", "Collection"}, nil)
	lower := NewMutableTerm(NewProtocolSymbol("Sequence"))
	higher := NewMutableTerm(NewProtocolSymbol("Collection"))

	assert.Equal(t, -1, lower.Compare(higher, graph))
	assert.Equal(t, 1, higher.Compare(lower, graph))
}

func TestMutableTermCompareIsReflexiveZero(t *testing.T) {
	graph := NewStaticProtocolGraph(nil, nil)
	term := NewMutableTerm(NewNameSymbol("a"), NewNameSymbol("b"))
	assert.Equal(t, 0, term.Compare(term.Copy(), graph))
}
