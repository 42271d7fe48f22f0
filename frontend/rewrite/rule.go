package rewrite

// Rule is an immutable, uniqued (LHS, RHS) pair plus a mutable deleted
// flag. On insertion, lhs must compare greater than rhs under the
// reduction order; Rule itself does not check this, RewriteSystem.AddRule
// does, immediately before constructing one.
//
// Rules are never removed from a RewriteSystem: HomotopyGenerator paths
// reference rules by index (RuleID), so a rule's slot and identity persist
// forever after insertion. Deletion is logical, encoded by deleted.
type Rule struct {
	lhs, rhs Term
	deleted  bool
}

func newRule(lhs, rhs Term) Rule {
	return Rule{lhs: lhs, rhs: rhs}
}

// LHS returns the rule's left-hand side.
func (r Rule) LHS() Term { return r.lhs }

// RHS returns the rule's right-hand side.
func (r Rule) RHS() Term { return r.rhs }

// IsDeleted reports whether the rule has been logically deleted.
func (r Rule) IsDeleted() bool { return r.deleted }

// MarkDeleted marks the rule deleted. Once deleted, a rule is never
// revived.
func (r *Rule) MarkDeleted() { r.deleted = true }

func (r Rule) String() string {
	s := r.lhs.String() + " => " + r.rhs.String()
	if r.deleted {
		s += " [deleted]"
	}
	return s
}
