package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrieInsertAndFindExactMatch(t *testing.T) {
	tr := newTrie()
	lhs := []Symbol{NewNameSymbol("a"), NewNameSymbol("b")}
	_, had := tr.insert(lhs, 7)
	assert.False(t, had)

	ruleID, ok := tr.find(lhs, 0)
	require.True(t, ok)
	assert.Equal(t, 7, ruleID)
}

func TestTrieFindIsLeftmostShortestMatch(t *testing.T) {
	tr := newTrie()
	// "ab" => rule 0, "abc" => rule 1: "ab" is a prefix of "abc" so lookups
	// starting at position 0 of "abcd" must stop at the shorter match.
	tr.insert([]Symbol{NewNameSymbol("a"), NewNameSymbol("b")}, 0)
	tr.insert([]Symbol{NewNameSymbol("a"), NewNameSymbol("b"), NewNameSymbol("c")}, 1)

	word := []Symbol{NewNameSymbol("a"), NewNameSymbol("b"), NewNameSymbol("c"), NewNameSymbol("d")}
	ruleID, ok := tr.find(word, 0)
	require.True(t, ok)
	assert.Equal(t, 0, ruleID)
}

func TestTrieFindNoMatch(t *testing.T) {
	tr := newTrie()
	tr.insert([]Symbol{NewNameSymbol("a")}, 0)

	word := []Symbol{NewNameSymbol("z")}
	_, ok := tr.find(word, 0)
	assert.False(t, ok)
}

func TestTrieInsertReportsDuplicate(t *testing.T) {
	tr := newTrie()
	lhs := []Symbol{NewNameSymbol("a")}
	_, had := tr.insert(lhs, 0)
	assert.False(t, had)

	previous, had := tr.insert(lhs, 1)
	assert.True(t, had)
	assert.Equal(t, 0, previous)
}

func TestTrieUpdateHistograms(t *testing.T) {
	tr := newTrie()
	tr.insert([]Symbol{NewNameSymbol("a")}, 0)
	tr.insert([]Symbol{NewNameSymbol("b")}, 1)

	nodeFanout, rootFanout := tr.updateHistograms()
	assert.Equal(t, 2, rootFanout)
	assert.NotEmpty(t, nodeFanout)
}
