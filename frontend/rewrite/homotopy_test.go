package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHomotopyGeneratorEmptyPathIsTriviallyValid(t *testing.T) {
	system := newTestSystem()
	basepoint := NewMutableTerm(NewNameSymbol("a"))
	gen := HomotopyGenerator{Basepoint: basepoint}

	assert.True(t, gen.isValid(system))
}

func TestHomotopyGeneratorUnbalancedPathIsInvalid(t *testing.T) {
	system := newTestSystem()
	system.Initialize([]RulePair{
		{LHS: NewMutableTerm(NewNameSymbol("a"), NewNameSymbol("b")), RHS: NewMutableTerm(NewNameSymbol("c"))},
	}, NewStaticProtocolGraph(nil, nil))

	gen := HomotopyGenerator{
		Basepoint: NewMutableTerm(NewNameSymbol("a"), NewNameSymbol("b")),
		Path:      RewritePath{Steps: []RewriteStep{{Offset: 0, RuleID: 0, Inverse: false}}},
	}

	// Applying the rule once, forward only, leaves the term at "c" rather
	// than back at the "a.b" basepoint.
	assert.False(t, gen.isValid(system))
}
