package rewrite

import (
	"log/slog"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/rewrite/internal/log"
	"github.com/cottand/rewrite/util/hset"
)

// DebugFlags is the tracing bit set threaded explicitly through Context
// rather than a package global, so the comparator (and by extension the
// whole system) stays reentrant and testable against synthetic protocol
// graphs.
type DebugFlags uint8

const (
	DebugAdd DebugFlags = 1 << iota
	DebugSimplify
	DebugCompletion
	DebugVerify
	DebugDump
)

// Contains reports whether flag is set.
func (f DebugFlags) Contains(flag DebugFlags) bool { return f&flag != 0 }

// MergeAssociatedTypeHook observes every successfully added, non-trivial
// rule: a callback the type checker registers to observe rule additions
// that equate two associated-type names.
type MergeAssociatedTypeHook func(lhs, rhs Term)

// HistogramSink receives the trie's fanout histograms at RewriteSystem
// teardown. Purely observability.
type HistogramSink func(nodeFanout map[int]int, rootFanout int)

var termHasher = immutable.Hasher[Term](termHasherImpl{})

type termHasherImpl struct{}

func (termHasherImpl) Hash(t Term) uint32 {
	h := t.Hash()
	return uint32(h ^ (h >> 32))
}

func (termHasherImpl) Equal(a, b Term) bool { return a.Equal(b) }

// Context is the interner, debug flag set, and histogram sink a
// RewriteSystem borrows for its lifetime. Context carries no
// type-inference state: it exists purely to give the rewrite core somewhere to intern terms and report
// diagnostics, the same narrow role Swift's RewriteContext plays for the
// real requirement machine.
type Context struct {
	Logger *slog.Logger
	Debug  DebugFlags

	// interned canonicalizes terms by content. A plain map keyed by the
	// full 64-bit hash (with a collision chain) is the correctness-
	// critical path; membership is additionally tracked in live, an
	// hset.HSet keyed by a 32-bit projection of the hash, so that its Len
	// gives a count of interned terms (a membership view, not the
	// canonicalization authority).
	interned map[uint64][]Term
	live     hset.HSet[Term]

	mergeHook     MergeAssociatedTypeHook
	histogramSink HistogramSink
}

// NewContext builds a Context. logger may be nil, in which case the
// project's shared section-filtered logger (internal/log.DefaultLogger) is
// used. Either way the Context's Logger carries "section"="rewrite", a
// section listed in internal/log's enabledSections.
func NewContext(logger *slog.Logger, debug DebugFlags) *Context {
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &Context{
		Logger:   logger.With("section", "rewrite"),
		Debug:    debug,
		interned: make(map[uint64][]Term),
		live:     hset.Empty[Term](termHasher),
	}
}

// OnMergedAssociatedType registers the associated-type merge hook. Only
// one hook may be registered at a time; re-registering replaces the
// previous one, matching how a driver owns a single RewriteSystem.
func (c *Context) OnMergedAssociatedType(hook MergeAssociatedTypeHook) {
	c.mergeHook = hook
}

// OnTrieHistograms registers the histogram sink invoked at RewriteSystem
// teardown.
func (c *Context) OnTrieHistograms(sink HistogramSink) {
	c.histogramSink = sink
}

// InternedCount returns the number of distinct terms currently interned,
// as counted by the live set: distinct terms whose 32-bit projected hashes
// collide are counted once.
func (c *Context) InternedCount() int {
	return c.live.Len()
}

func (c *Context) intern(symbols []Symbol) Term {
	candidate := termOf(symbols)
	for _, existing := range c.interned[candidate.hash] {
		if existing.Equal(candidate) {
			return existing
		}
	}
	c.interned[candidate.hash] = append(c.interned[candidate.hash], candidate)
	c.live.Add(candidate)
	return candidate
}
