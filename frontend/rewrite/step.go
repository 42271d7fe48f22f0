package rewrite

import "fmt"

// RewriteStep is a single rule application at an offset, possibly
// inverted. A non-inverse step rewrites the subword at Offset from the
// rule's LHS to its RHS; an inverse step rewrites RHS to LHS.
type RewriteStep struct {
	Offset  int
	RuleID  int
	Inverse bool
}

// Invert toggles the step's direction in place.
func (s *RewriteStep) Invert() {
	s.Inverse = !s.Inverse
}

// apply applies the step to term, mutating it, and returns a rendering of
// the step suitable for Dump ("prefix.(LHS => RHS).suffix").
func (s RewriteStep) apply(term *MutableTerm, system *RewriteSystem) string {
	rule := system.Rule(s.RuleID)

	lhs, rhs := rule.LHS(), rule.RHS()
	if s.Inverse {
		lhs, rhs = rhs, lhs
	}

	prefix := term.Slice(0, s.Offset)
	suffix := term.Slice(s.Offset+lhs.Len(), term.Len())

	var b fmt.Stringer = dumpBuilder{prefix: prefix, lhs: rule.LHS(), rhs: rule.RHS(), inverse: s.Inverse, suffix: suffix}

	term.Splice(s.Offset, s.Offset+lhs.Len(), rhs.Symbols())

	return b.String()
}

type dumpBuilder struct {
	prefix, suffix MutableTerm
	lhs, rhs       Term
	inverse        bool
}

func (d dumpBuilder) String() string {
	arrow := " => "
	if d.inverse {
		arrow = " <= "
	}
	out := ""
	if !d.prefix.Empty() {
		out += d.prefix.String() + "."
	}
	out += "(" + d.lhs.String() + arrow + d.rhs.String() + ")"
	if !d.suffix.Empty() {
		out += "." + d.suffix.String()
	}
	return out
}

// RewritePath is an ordered sequence of RewriteStep. The empty path denotes
// the identity rewrite.
type RewritePath struct {
	Steps []RewriteStep
}

// Empty reports whether the path has no steps.
func (p RewritePath) Empty() bool { return len(p.Steps) == 0 }

// Add appends a single step.
func (p *RewritePath) Add(step RewriteStep) {
	p.Steps = append(p.Steps, step)
}

// Append concatenates other onto p.
func (p *RewritePath) Append(other RewritePath) {
	p.Steps = append(p.Steps, other.Steps...)
}

// Invert reverses the sequence and toggles every step, so that replaying
// the result undoes the original path.
func (p *RewritePath) Invert() {
	n := len(p.Steps)
	for i := 0; i < n/2; i++ {
		p.Steps[i], p.Steps[n-1-i] = p.Steps[n-1-i], p.Steps[i]
	}
	for i := range p.Steps {
		p.Steps[i].Invert()
	}
}

// Replay applies every step of p to a copy of term in order, returning the
// resulting term. It is used by the round-trip checks that every homotopy
// generator's path returns to its basepoint; Dump renders paths through
// dump instead.
func (p RewritePath) Replay(term MutableTerm, system *RewriteSystem) MutableTerm {
	cur := term.Copy()
	for _, step := range p.Steps {
		step.apply(&cur, system)
	}
	return cur
}

// dump renders the path as "step ⊗ step ⊗ …" starting from basepoint,
// mirroring the original source's RewritePath::dump.
func (p RewritePath) dump(basepoint MutableTerm, system *RewriteSystem) string {
	cur := basepoint.Copy()
	parts := make([]string, 0, len(p.Steps))
	for _, step := range p.Steps {
		parts = append(parts, step.apply(&cur, system))
	}
	out := ""
	for i, part := range parts {
		if i > 0 {
			out += " ⊗ "
		}
		out += part
	}
	return out
}
