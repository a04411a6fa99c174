package elaborator

import (
	"fmt"

	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/diagnostics"
	"github.com/fathomlang/fathom/internal/domain"
	"github.com/fathomlang/fathom/internal/surface"
)

// inferMatch elaborates `match e { p => b, …, _ => b }` without any
// outside pressure on the result type: the first non-default arm's
// body fixes the result type, and every later arm is checked against
// it, mirroring how array literals pick an element type from their
// first entry.
func (c *Context) inferMatch(n surface.Match) (core.Term, domain.Value) {
	scrutCore, scrutTy := c.Infer(n.Scrutinee)
	if isReportedError(scrutTy) {
		return scrutCore, scrutTy
	}

	branches, defaultBody, firstIdx, ok := c.elabMatchPatterns(n, scrutTy)
	if !ok {
		return c.reportError(n.Span(), diagnostics.CodeTypeMismatch, "match scrutinee has no constant-literal representation to pattern match on")
	}

	var resultTy domain.Value
	var resultCore core.Term

	if firstIdx >= 0 {
		resultCore, resultTy = c.Infer(n.Arms[firstIdx].Body)
	} else if len(n.Arms) > 0 {
		resultCore, resultTy = c.Infer(n.Arms[0].Body)
	} else {
		return c.reportError(n.Span(), diagnostics.CodeTypeMismatch, "match expression has no arms")
	}

	for i, arm := range n.Arms {
		if arm.Default {
			defaultBody = c.Check(arm.Body, resultTy)
			continue
		}
		if i == firstIdx {
			branches[i].Body = resultCore
			continue
		}
		branches[i].Body = c.Check(arm.Body, resultTy)
	}

	return core.ConstMatch{Scrutinee: scrutCore, Branches: compactBranches(branches), Default: defaultBody}, resultTy
}

// checkMatch is the same elaboration with every arm body checked
// against an expected type handed down from outside, instead of
// inferred from the first arm.
func (c *Context) checkMatch(n surface.Match, expected domain.Value) core.Term {
	scrutCore, scrutTy := c.Infer(n.Scrutinee)
	if isReportedError(scrutTy) {
		return scrutCore
	}

	branches, defaultBody, _, ok := c.elabMatchPatterns(n, scrutTy)
	if !ok {
		term, _ := c.reportError(n.Span(), diagnostics.CodeTypeMismatch, "match scrutinee has no constant-literal representation to pattern match on")
		return term
	}

	for i, arm := range n.Arms {
		if arm.Default {
			defaultBody = c.Check(arm.Body, expected)
			continue
		}
		branches[i].Body = c.Check(arm.Body, expected)
	}

	return core.ConstMatch{Scrutinee: scrutCore, Branches: compactBranches(branches), Default: defaultBody}
}

// matchBranch accumulates a pattern while its body is elaborated in a
// second pass (in infer mode the result type isn't known until the
// first non-default arm's body has been inferred).
type matchBranch struct {
	core.ConstBranch
	isArm bool
}

func compactBranches(branches []matchBranch) []core.ConstBranch {
	out := make([]core.ConstBranch, 0, len(branches))
	for _, b := range branches {
		if b.isArm {
			out = append(out, b.ConstBranch)
		}
	}
	return out
}

// elabMatchPatterns checks every non-default arm's pattern against the
// scrutinee's type and extracts its constant value, reporting an error
// per malformed pattern (recovered by skipping that arm). firstIdx is
// the index of the first non-default arm, or -1 if there is none.
func (c *Context) elabMatchPatterns(n surface.Match, scrutTy domain.Value) (branches []matchBranch, defaultBody core.Term, firstIdx int, ok bool) {
	forced := c.Eval.Force(scrutTy)
	if _, isPrim := forced.(domain.VStuck); !isPrim {
		return nil, nil, -1, false
	}

	branches = make([]matchBranch, len(n.Arms))
	firstIdx = -1
	for i, arm := range n.Arms {
		if arm.Default {
			continue
		}
		patCore := c.Check(arm.Pattern, scrutTy)
		lit, isConst := patCore.(core.ConstLit)
		if !isConst {
			c.reportError(arm.Pattern.Span(), diagnostics.CodeTypeMismatch,
				fmt.Sprintf("match pattern must be a constant literal, found %T", patCore))
			continue
		}
		branches[i] = matchBranch{ConstBranch: core.ConstBranch{Pattern: lit.Value}, isArm: true}
		if firstIdx < 0 {
			firstIdx = i
		}
	}
	return branches, defaultBody, firstIdx, true
}
