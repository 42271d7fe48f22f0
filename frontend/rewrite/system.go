package rewrite

import (
	"fmt"
	"io"
)

// RulePair is an initial, possibly-unoriented pair of terms handed to
// Initialize: one per generic requirement translated by the (out of
// scope) front end.
type RulePair struct {
	LHS, RHS MutableTerm
}

// RewriteSystem owns the rule store, its trie index, and the homotopy log
// for one generic signature's requirement machine. It is single-threaded
// and synchronous: all mutation goes through the owning handle, and
// concurrent mutation is undefined.
type RewriteSystem struct {
	ctx       *Context
	protocols ProtocolGraph

	rules    []Rule
	trie     *trie
	homotopy []HomotopyGenerator

	initialized bool
}

// NewRewriteSystem builds an empty RewriteSystem bound to ctx.
// protocols and rules are supplied by a later call to Initialize.
func NewRewriteSystem(ctx *Context) *RewriteSystem {
	return &RewriteSystem{
		ctx:  ctx,
		trie: newTrie(),
	}
}

// Close reports the trie's fanout histograms to the Context's histogram
// sink, if one was registered. Go has no destructors, so callers owning a
// RewriteSystem for a bounded scope should `defer rs.Close()` the way they
// would close any other resource.
func (rs *RewriteSystem) Close() {
	if rs.ctx.histogramSink == nil {
		return
	}
	nodeFanout, rootFanout := rs.trie.updateHistograms()
	rs.ctx.histogramSink(nodeFanout, rootFanout)
}

// Initialize consumes the initial oriented or unoriented requirement
// pairs, forwarding each to AddRule with no derivation path. It may only
// be called once.
func (rs *RewriteSystem) Initialize(rules []RulePair, protocols ProtocolGraph) {
	if rs.initialized {
		rs.fatalf("RewriteSystem.Initialize called more than once")
	}
	rs.initialized = true
	rs.protocols = protocols

	for _, pair := range rules {
		rs.AddRule(pair.LHS, pair.RHS, nil)
	}
}

// Rule returns the rule stored at id.
func (rs *RewriteSystem) Rule(id int) *Rule {
	return &rs.rules[id]
}

// RulesLen returns the number of rules ever inserted, deleted or not.
func (rs *RewriteSystem) RulesLen() int {
	return len(rs.rules)
}

// HomotopyGenerators returns the append-only homotopy log, for the
// minimal-signature computation performed downstream.
func (rs *RewriteSystem) HomotopyGenerators() []HomotopyGenerator {
	return rs.homotopy
}

// AddRule simplifies both sides, orients the surviving pair, and either
// records a trivial homotopy loop (returning false) or inserts a fresh
// rule (returning true).
//
// If path is non-nil, it witnesses an external derivation from the
// pre-simplification lhs to the pre-simplification rhs (typically supplied
// by the completion driver from a critical-pair overlap).
func (rs *RewriteSystem) AddRule(lhs, rhs MutableTerm, path *RewritePath) bool {
	if lhs.Empty() || rhs.Empty() {
		rs.fatalf("AddRule: lhs and rhs must be non-empty")
	}

	if rs.ctx.Debug.Contains(DebugAdd) {
		rs.ctx.Logger.Debug("adding rule", "lhs", lhs.String(), "rhs", rhs.String())
	}

	var lhsPath, rhsPath RewritePath
	rs.Simplify(&lhs, &lhsPath)
	rs.Simplify(&rhs, &rhsPath)

	var loop RewritePath
	if path != nil {
		// (1) apply lhsPath in reverse to produce the original lhs.
		lhsPath.Invert()
		loop.Append(lhsPath)
		// (2) apply the externally supplied derivation.
		loop.Append(*path)
		// (3) apply rhsPath to produce the simplified rhs.
		loop.Append(rhsPath)
	}

	result := lhs.Compare(rhs, rs.protocols)
	if result == 0 {
		if path != nil {
			rs.homotopy = append(rs.homotopy, HomotopyGenerator{Basepoint: lhs, Path: loop})
			if rs.ctx.Debug.Contains(DebugAdd) {
				rs.ctx.Logger.Debug("recorded trivial loop", "basepoint", lhs.String())
			}
		}
		return false
	}

	if result < 0 {
		lhs, rhs = rhs, lhs
		loop.Invert()
	}

	if lhs.Compare(rhs, rs.protocols) <= 0 {
		rs.fatalf("AddRule: failed to orient lhs > rhs after swap")
	}

	if rs.ctx.Debug.Contains(DebugAdd) {
		rs.ctx.Logger.Debug("simplified and oriented rule", "lhs", lhs.String(), "rhs", rhs.String())
	}

	newRuleID := len(rs.rules)
	uniquedLHS := lhs.Intern(rs.ctx)
	uniquedRHS := rhs.Intern(rs.ctx)
	rs.rules = append(rs.rules, newRule(uniquedLHS, uniquedRHS))

	if path != nil {
		loop.Add(RewriteStep{Offset: 0, RuleID: newRuleID, Inverse: true})
		rs.homotopy = append(rs.homotopy, HomotopyGenerator{Basepoint: lhs, Path: loop})
		if rs.ctx.Debug.Contains(DebugAdd) {
			rs.ctx.Logger.Debug("recorded non-trivial loop", "basepoint", lhs.String())
		}
	}

	if oldRuleID, had := rs.trie.insert(uniquedLHS.Symbols(), newRuleID); had {
		rs.ctx.Logger.Error("duplicate rewrite rule",
			"new_rule", rs.rules[newRuleID].String(),
			"old_rule_id", oldRuleID,
			"old_rule", rs.rules[oldRuleID].String())
		rs.fatalf("Duplicate rewrite rule!")
	}

	if rs.ctx.mergeHook != nil {
		rs.ctx.mergeHook(uniquedLHS, uniquedRHS)
	}

	return true
}

// Simplify reduces term to a normal form under the current rules: repeated
// leftmost-position, shortest-match rewriting until no rule applies
// anywhere. If path is non-nil, every step taken is recorded.
//
// Returns whether term was changed at all; changed is true iff path ends
// up non-empty iff term was modified.
func (rs *RewriteSystem) Simplify(term *MutableTerm, path *RewritePath) (changed bool) {
	if term.Empty() {
		rs.fatalf("Simplify: term must be non-empty")
	}

	for {
		tryAgain := false

		symbols := term.Symbols()
		for from := 0; from < len(symbols); from++ {
			ruleID, ok := rs.trie.find(symbols, from)
			if !ok {
				continue
			}
			rule := rs.Rule(ruleID)
			if rule.IsDeleted() {
				continue
			}

			to := from + rule.LHS().Len()
			term.Splice(from, to, rule.RHS().Symbols())

			if path != nil {
				path.Add(RewriteStep{Offset: from, RuleID: ruleID, Inverse: false})
			}

			changed = true
			tryAgain = true
			break
		}

		if !tryAgain {
			break
		}
	}

	if rs.ctx.Debug.Contains(DebugSimplify) {
		if changed {
			rs.ctx.Logger.Debug("simplified", "result", term.String())
		} else {
			rs.ctx.Logger.Debug("irreducible term", "term", term.String())
		}
	}

	return changed
}

// SimplifySystem must run exactly once, after the driver has established
// confluence: deletion is only sound once no two reductions of the same
// term can diverge.
func (rs *RewriteSystem) SimplifySystem() {
	// e is captured once: rules appended below (the simplified-RHS
	// replacements) are never themselves revisited by this pass.
	e := len(rs.rules)
	for ruleID := 0; ruleID < e; ruleID++ {
		rule := rs.Rule(ruleID)
		if rule.IsDeleted() {
			continue
		}

		lhs := rule.LHS()
		lhsSymbols := lhs.Symbols()

		redundant := false
		for begin := 0; begin < len(lhsSymbols); begin++ {
			otherRuleID, ok := rs.trie.find(lhsSymbols, begin)
			if !ok {
				continue
			}
			if otherRuleID == ruleID {
				continue
			}
			if rs.Rule(otherRuleID).IsDeleted() {
				continue
			}

			if rs.ctx.Debug.Contains(DebugCompletion) {
				rs.ctx.Logger.Debug("deleting rule: lhs contains another rule's lhs",
					"rule", rule.String(), "other_rule", rs.Rule(otherRuleID).String())
			}

			rule.MarkDeleted()
			redundant = true
			break
		}
		if redundant {
			continue
		}

		var rhsPath RewritePath
		rhs := MutableTermFrom(rule.RHS())
		if !rs.Simplify(&rhs, &rhsPath) {
			continue
		}

		rule.MarkDeleted()

		newRuleID := len(rs.rules)
		rs.rules = append(rs.rules, newRule(lhs, rhs.Intern(rs.ctx)))
		if oldRuleID, had := rs.trie.insert(lhsSymbols, newRuleID); !had || oldRuleID != ruleID {
			rs.fatalf("SimplifySystem: expected to replace the trie entry for the deleted rule")
		}

		var loop RewritePath
		// (1) apply rhsPath in reverse to produce the original rhs.
		rhsPath.Invert()
		loop.Append(rhsPath)
		// (2) apply the original rule in reverse to produce lhs.
		loop.Add(RewriteStep{Offset: 0, RuleID: ruleID, Inverse: true})
		// (3) apply the new rule to produce the simplified rhs.
		loop.Add(RewriteStep{Offset: 0, RuleID: newRuleID, Inverse: false})

		if rs.ctx.Debug.Contains(DebugCompletion) {
			rs.ctx.Logger.Debug("right hand side simplification recorded a loop", "basepoint", rhs.String())
		}

		rs.homotopy = append(rs.homotopy, HomotopyGenerator{Basepoint: rhs, Path: loop})
	}
}

// Verify performs the internal structural audit of every non-deleted
// rule's positional symbol-kind constraints and root-protocol equality.
// Any failure dumps the offending rule and system, then fatally aborts: a
// verify failure is a compiler bug, not a user error.
func (rs *RewriteSystem) Verify() {
	assertRule := func(rule *Rule, cond bool, what string) {
		if cond {
			return
		}
		rs.ctx.Logger.Error("malformed rewrite rule", "rule", rule.String(), "violated", what)
		rs.fatalf(fmt.Sprintf("malformed rewrite rule %s: %s", rule.String(), what))
	}

	for i := range rs.rules {
		rule := &rs.rules[i]
		if rule.IsDeleted() {
			continue
		}

		if rs.ctx.Debug.Contains(DebugVerify) {
			rs.ctx.Logger.Debug("verifying rule", "rule", rule.String())
		}

		lhs := rule.LHS().Symbols()
		rhs := rule.RHS().Symbols()

		for index, sym := range lhs {
			if index != len(lhs)-1 {
				assertRule(rule, sym.Kind() != Layout, "Layout only allowed at the last position of an LHS")
				assertRule(rule, !sym.Kind().isSuperclassOrConcreteType(), "Superclass/ConcreteType only allowed at the last position of an LHS")
			}
			if index != 0 {
				assertRule(rule, sym.Kind() != GenericParam, "GenericParam only allowed at position 0 of an LHS")
			}
			if index != 0 && index != len(lhs)-1 {
				assertRule(rule, sym.Kind() != Protocol, "Protocol only allowed at position 0 or last of an LHS")
			}
		}

		for index, sym := range rhs {
			// Only valid on well-formed input; it is enforced
			// unconditionally, with no flag to relax it for input the
			// driver has already reported as malformed.
			assertRule(rule, sym.Kind() != Name, "RHS forbids Name symbols (only valid for well-formed input)")
			assertRule(rule, sym.Kind() != Layout, "RHS forbids Layout symbols")
			assertRule(rule, !sym.Kind().isSuperclassOrConcreteType(), "RHS forbids Superclass/ConcreteType symbols")

			if index != 0 {
				assertRule(rule, sym.Kind() != GenericParam, "RHS forbids GenericParam except at position 0")
				assertRule(rule, sym.Kind() != Protocol, "RHS forbids Protocol except at position 0")
			}
		}

		lhsDomain := rule.LHS().RootProtocols(rs.protocols)
		rhsDomain := rule.RHS().RootProtocols(rs.protocols)
		assertRule(rule, rootProtocolsEqual(lhsDomain, rhsDomain),
			fmt.Sprintf("LHS root protocols %s != RHS root protocols %s", fmtProtocolIDs(lhsDomain), fmtProtocolIDs(rhsDomain)))
	}
}

// Dump emits the ordered list of rules and every homotopy generator,
// formatted as "base: step ⊗ step ⊗ …" where each step renders as
// "prefix.(LHS => RHS).suffix" (or "<=" for inverse). Purely diagnostic.
func (rs *RewriteSystem) Dump(out io.Writer) {
	if rs.ctx.Debug.Contains(DebugDump) {
		rs.ctx.Logger.Debug("dumping rewrite system", "rules", len(rs.rules), "homotopy_generators", len(rs.homotopy))
	}

	fmt.Fprintln(out, "Rewrite system: {")
	for _, rule := range rs.rules {
		fmt.Fprintf(out, "- %s\n", rule.String())
	}
	fmt.Fprintln(out, "}")
	fmt.Fprintln(out, "Homotopy generators: {")
	for _, gen := range rs.homotopy {
		fmt.Fprintf(out, "- %s: %s\n", gen.Basepoint.String(), gen.Path.dump(gen.Basepoint, rs))
	}
	fmt.Fprintln(out, "}")
}

// SimplifySubstitutionsInSuperclassOrConcreteSymbol maps a symbol with
// embedded term substitutions to the same symbol with each substitution
// simplified via Simplify, used by the upstream symbol normaliser.
func (rs *RewriteSystem) SimplifySubstitutionsInSuperclassOrConcreteSymbol(sym Symbol) Symbol {
	return sym.transformConcreteSubstitutions(func(t Term) Term {
		mut := MutableTermFrom(t)
		if !rs.Simplify(&mut, nil) {
			return t
		}
		return mut.Intern(rs.ctx)
	})
}
