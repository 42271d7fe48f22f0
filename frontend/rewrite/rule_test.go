package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleStringReflectsDeletedState(t *testing.T) {
	lhs := termOf([]Symbol{NewNameSymbol("a"), NewNameSymbol("b")})
	rhs := termOf([]Symbol{NewNameSymbol("c")})
	rule := newRule(lhs, rhs)

	assert.Equal(t, "a.b => c", rule.String())
	assert.False(t, rule.IsDeleted())

	rule.MarkDeleted()
	assert.True(t, rule.IsDeleted())
	assert.Equal(t, "a.b => c [deleted]", rule.String())
}
