package rewrite

import (
	"sort"

	xtgoset "github.com/xtgo/set"
)

// protocolIDSlice adapts []ProtocolID to sort.Interface so it can be used
// with github.com/xtgo/set's in-place set algebra.
type protocolIDSlice []ProtocolID

func (s protocolIDSlice) Len() int           { return len(s) }
func (s protocolIDSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s protocolIDSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// setSymmetricDifferenceEmpty reports whether a and b contain the same set
// of protocol IDs (ignoring order and duplicates), used by
// RewriteSystem.Verify to check Invariant 1 (LHS.rootProtocols ==
// RHS.rootProtocols) without allocating a hash set per rule.
func setSymmetricDifferenceEmpty(a, b []ProtocolID) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}

	sortedA := append(protocolIDSlice{}, a...)
	sort.Sort(sortedA)
	sortedA = sortedA[:xtgoset.Uniq(sortedA)]

	sortedB := append(protocolIDSlice{}, b...)
	sort.Sort(sortedB)
	sortedB = sortedB[:xtgoset.Uniq(sortedB)]

	pivot := len(sortedA)
	combined := append(sortedA, sortedB...)
	n := xtgoset.SymDiff(combined, pivot)
	return n == 0
}
