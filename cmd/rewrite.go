package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cottand/rewrite/frontend/rewrite"
	"github.com/cottand/rewrite/internal/log"
	"github.com/spf13/cobra"
)

// RewriteCmd is a debugging entry point for the generic-requirement
// rewrite core: it reads a line-oriented rule file, builds a
// rewrite.RewriteSystem from it, runs SimplifySystem and Verify, and dumps
// the result.
var RewriteCmd = &cobra.Command{
	Use:          "rewrite ./rules.txt",
	Short:        "Build and dump a generic-requirement rewrite system from a rule file",
	RunE:         runRewrite,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var rewriteDebugFlags *[]string

func init() {
	rewriteDebugFlags = RewriteCmd.Flags().StringSlice("debug", nil, "debug tags to enable: add,simplify,completion,verify,dump")
}

// ruleFileFormat: one rule per non-empty, non-"#"-prefixed line, formatted
// as whitespace-separated symbol tokens, an "=>" separator, then more
// tokens:
//
//	T => G:0:0
//	P:Sequence.Element => P:Collection.Element
//
// Each token is either a bare identifier (a Name symbol), "P:<protocol>"
// (a Protocol symbol), "A:<protocol>.<name>" (an AssociatedType symbol), or
// "G:<depth>:<index>" (a GenericParam symbol). This is intentionally a
// minimal stand-in for the real front-end translation from generic
// requirement syntax, which is out of scope for this package; it exists
// only so this command has something to read.
func parseRuleFile(path string) ([]rewrite.RulePair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open rule file: %w", err)
	}
	defer f.Close()

	var pairs []rewrite.RulePair
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lhsText, rhsText, ok := strings.Cut(line, "=>")
		if !ok {
			return nil, fmt.Errorf("rule file line %d: missing '=>': %q", lineNo, line)
		}
		lhs, err := parseTerm(lhsText)
		if err != nil {
			return nil, fmt.Errorf("rule file line %d: %w", lineNo, err)
		}
		rhs, err := parseTerm(rhsText)
		if err != nil {
			return nil, fmt.Errorf("rule file line %d: %w", lineNo, err)
		}
		pairs = append(pairs, rewrite.RulePair{LHS: lhs, RHS: rhs})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read rule file: %w", err)
	}
	return pairs, nil
}

func parseTerm(text string) (rewrite.MutableTerm, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return rewrite.MutableTerm{}, fmt.Errorf("empty term")
	}
	symbols := make([]rewrite.Symbol, 0, len(fields))
	for _, tok := range fields {
		sym, err := parseSymbol(tok)
		if err != nil {
			return rewrite.MutableTerm{}, err
		}
		symbols = append(symbols, sym)
	}
	return rewrite.NewMutableTerm(symbols...), nil
}

func parseSymbol(tok string) (rewrite.Symbol, error) {
	switch {
	case strings.HasPrefix(tok, "P:"):
		return rewrite.NewProtocolSymbol(rewrite.ProtocolID(tok[2:])), nil
	case strings.HasPrefix(tok, "A:"):
		protoAndName := tok[2:]
		proto, name, ok := strings.Cut(protoAndName, ".")
		if !ok {
			return rewrite.Symbol{}, fmt.Errorf("malformed associated type token %q, want A:<protocol>.<name>", tok)
		}
		return rewrite.NewAssociatedTypeSymbol(rewrite.ProtocolID(proto), name), nil
	case strings.HasPrefix(tok, "G:"):
		depthAndIndex := tok[2:]
		depthStr, indexStr, ok := strings.Cut(depthAndIndex, ":")
		if !ok {
			return rewrite.Symbol{}, fmt.Errorf("malformed generic param token %q, want G:<depth>:<index>", tok)
		}
		depth, err := strconv.Atoi(depthStr)
		if err != nil {
			return rewrite.Symbol{}, fmt.Errorf("malformed generic param token %q: %w", tok, err)
		}
		index, err := strconv.Atoi(indexStr)
		if err != nil {
			return rewrite.Symbol{}, fmt.Errorf("malformed generic param token %q: %w", tok, err)
		}
		return rewrite.NewGenericParamSymbol(rewrite.GenericParamID{Depth: depth, Index: index}), nil
	default:
		return rewrite.NewNameSymbol(tok), nil
	}
}

func parseDebugFlags(tags []string) rewrite.DebugFlags {
	var flags rewrite.DebugFlags
	for _, tag := range tags {
		switch strings.ToLower(strings.TrimSpace(tag)) {
		case "add":
			flags |= rewrite.DebugAdd
		case "simplify":
			flags |= rewrite.DebugSimplify
		case "completion":
			flags |= rewrite.DebugCompletion
		case "verify":
			flags |= rewrite.DebugVerify
		case "dump":
			flags |= rewrite.DebugDump
		}
	}
	return flags
}

func runRewrite(cmd *cobra.Command, args []string) error {
	pairs, err := parseRuleFile(args[0])
	if err != nil {
		return err
	}

	ctx := rewrite.NewContext(log.DefaultLogger, parseDebugFlags(*rewriteDebugFlags))
	system := rewrite.NewRewriteSystem(ctx)
	defer system.Close()

	// The protocol graph normally comes from the protocol conformance
	// graph the type checker has already built; here an empty static
	// graph is used: no protocol refines another, and every protocol has
	// the same precedence, so two protocols never order each other.
	system.Initialize(pairs, rewrite.NewStaticProtocolGraph(nil, nil))
	system.SimplifySystem()
	system.Verify()

	system.Dump(cmd.OutOrStdout())
	return nil
}
