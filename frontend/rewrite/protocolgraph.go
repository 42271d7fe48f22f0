package rewrite

import "github.com/hashicorp/go-set/v3"

// ProtocolGraph is the external DAG of protocol refinement consumed by the
// reduction order and by the root-protocol invariant. The rewrite core
// never constructs one; it is supplied by the driver and borrowed for
// the RewriteSystem's lifetime.
type ProtocolGraph interface {
	// Precedence returns p's position in the graph's total order over
	// protocols, used to break ties between two Protocol symbols in the
	// reduction order comparator.
	Precedence(p ProtocolID) int

	// RootProtocols returns the protocols at the root of p's ancestry
	// (p itself plus every protocol it refines), used to compute a
	// term's root-protocol set when its root symbol is an AssociatedType.
	RootProtocols(p ProtocolID) []ProtocolID
}

// staticProtocolGraph is a minimal in-memory ProtocolGraph, adequate for
// the CLI entry point (cmd/rewrite.go) and for tests that don't need a
// real protocol hierarchy from the type checker's protocol conformance
// graph.
type staticProtocolGraph struct {
	precedence map[ProtocolID]int
	ancestry   map[ProtocolID][]ProtocolID
}

// NewStaticProtocolGraph builds a ProtocolGraph from an explicit
// precedence order (earlier entries have lower precedence) and an
// ancestry map from a protocol to the protocols it refines, transitively
// included.
func NewStaticProtocolGraph(order []ProtocolID, refines map[ProtocolID][]ProtocolID) ProtocolGraph {
	precedence := make(map[ProtocolID]int, len(order))
	for i, p := range order {
		precedence[p] = i
	}
	ancestry := make(map[ProtocolID][]ProtocolID, len(refines))
	for p := range refines {
		ancestry[p] = closeAncestry(p, refines)
	}
	return &staticProtocolGraph{precedence: precedence, ancestry: ancestry}
}

func closeAncestry(p ProtocolID, refines map[ProtocolID][]ProtocolID) []ProtocolID {
	seen := set.New[ProtocolID](0)
	seen.Insert(p)
	out := []ProtocolID{p}
	queue := append([]ProtocolID{}, refines[p]...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seen.Contains(next) {
			continue
		}
		seen.Insert(next)
		out = append(out, next)
		queue = append(queue, refines[next]...)
	}
	return out
}

func (g *staticProtocolGraph) Precedence(p ProtocolID) int {
	if prec, ok := g.precedence[p]; ok {
		return prec
	}
	return len(g.precedence)
}

func (g *staticProtocolGraph) RootProtocols(p ProtocolID) []ProtocolID {
	if roots, ok := g.ancestry[p]; ok {
		return roots
	}
	return []ProtocolID{p}
}
