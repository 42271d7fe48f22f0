package rewrite

import (
	"strings"

	"github.com/pkg/errors"
)

// invariantViolation is a compiler-bug-grade error: the rewrite system
// itself has violated one of its own structural invariants. These are
// never returned to callers; fatalf logs the offending state and panics
// with one wrapped in a stack trace via pkg/errors. Internal invariant
// violations are treated as fatal rather than as a recoverable error
// returned up the call stack, since by construction they can only mean
// the rewrite core itself is broken, not that the caller passed bad input.
type invariantViolation struct {
	msg string
}

func (e *invariantViolation) Error() string { return e.msg }

// fatalf logs msg plus a full dump of the system, then panics. Call sites:
// an empty term passed to AddRule or Simplify, a second Initialize call, a
// pair AddRule cannot orient, a duplicate LHS insertion (reported as
// "Duplicate rewrite rule!", as the original source does before aborting),
// a missing trie entry during SimplifySystem, and a Verify failure.
func (rs *RewriteSystem) fatalf(msg string) {
	var buf strings.Builder
	rs.Dump(&buf)

	rs.ctx.Logger.Error("rewrite system invariant violated", "detail", msg, "dump", buf.String())

	panic(errors.Wrap(&invariantViolation{msg: msg}, "rewrite system invariant violated"))
}
