package rewrite

// HomotopyGenerator is a loop (basepoint, path) where replaying path
// against basepoint returns basepoint unchanged. The homotopy log is the
// 2-cell complex the completion driver later walks to compute minimal
// requirement signatures; the rewrite core only ever appends to it.
type HomotopyGenerator struct {
	Basepoint MutableTerm
	Path      RewritePath
}

// isValid replays Path against Basepoint and reports whether it returns to
// Basepoint, the contract every HomotopyGenerator must satisfy. Used by
// tests, not by production code paths, since replaying is only meaningful
// once every referenced rule ID still exists (deleted rules keep their
// slot).
func (g HomotopyGenerator) isValid(system *RewriteSystem) bool {
	result := g.Path.Replay(g.Basepoint, system)
	return result.Len() == g.Basepoint.Len() && termsEqual(result, g.Basepoint)
}

func termsEqual(a, b MutableTerm) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !a.At(i).Equal(b.At(i)) {
			return false
		}
	}
	return true
}
