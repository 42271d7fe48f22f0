package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewritePathInvertRoundTrips(t *testing.T) {
	path := RewritePath{Steps: []RewriteStep{
		{Offset: 0, RuleID: 0, Inverse: false},
		{Offset: 1, RuleID: 1, Inverse: true},
	}}
	path.Invert()

	assert.Equal(t, RewriteStep{Offset: 1, RuleID: 1, Inverse: false}, path.Steps[0])
	assert.Equal(t, RewriteStep{Offset: 0, RuleID: 0, Inverse: true}, path.Steps[1])

	path.Invert()

	assert.Equal(t, RewriteStep{Offset: 0, RuleID: 0, Inverse: false}, path.Steps[0])
	assert.Equal(t, RewriteStep{Offset: 1, RuleID: 1, Inverse: true}, path.Steps[1])
}

func TestRewriteStepApplyRendersPrefixAndSuffix(t *testing.T) {
	system := newTestSystem()
	system.Initialize([]RulePair{
		{LHS: NewMutableTerm(NewNameSymbol("b"), NewNameSymbol("c")), RHS: NewMutableTerm(NewNameSymbol("x"))},
	}, NewStaticProtocolGraph(nil, nil))

	term := NewMutableTerm(NewNameSymbol("a"), NewNameSymbol("b"), NewNameSymbol("c"), NewNameSymbol("d"))
	step := RewriteStep{Offset: 1, RuleID: 0, Inverse: false}

	rendering := step.apply(&term, system)

	assert.Equal(t, "a.x.d", term.String())
	assert.Equal(t, "a.(b.c => x).d", rendering)
}

func TestRewritePathReplayAppliesStepsInOrder(t *testing.T) {
	system := newTestSystem()
	system.Initialize([]RulePair{
		{LHS: NewMutableTerm(NewNameSymbol("a"), NewNameSymbol("b")), RHS: NewMutableTerm(NewNameSymbol("c"))},
	}, NewStaticProtocolGraph(nil, nil))

	basepoint := NewMutableTerm(NewNameSymbol("a"), NewNameSymbol("b"))
	path := RewritePath{Steps: []RewriteStep{{Offset: 0, RuleID: 0, Inverse: false}}}

	result := path.Replay(basepoint, system)

	assert.Equal(t, "c", result.String())
	// basepoint itself must not be mutated by Replay.
	assert.Equal(t, "a.b", basepoint.String())
}
