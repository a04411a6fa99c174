package elaborator

import (
	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/diagnostics"
	"github.com/fathomlang/fathom/internal/domain"
	"github.com/fathomlang/fathom/internal/token"
)

// reportError emits an Error-severity diagnostic at span and returns
// the error-recovery pair every failing infer/check call produces:
// Prim(ReportedError) as the term, VError as the type/value (spec.md
// §4.3, "Error recovery" — "a core term Prim(ReportedError) ... or a
// fresh meta"; we always pick the sentinel, which is simpler and
// absorbs every later comparison per spec.md §9).
func (c *Context) reportError(span token.Span, code diagnostics.Code, message string) (core.Term, domain.Value) {
	c.Sink.Report(diagnostics.Diagnostic{
		Severity: diagnostics.Error,
		Code:     code,
		Message:  message,
		Primary:  diagnostics.Label{Span: span, Message: message},
	})
	return core.Prim{Name: core.ReportedError}, domain.VError{}
}

// reportBug emits a Bug-severity diagnostic tagged with this context's
// elaboration session id, for post-elaboration invariant violations
// spec.md §7 taxonomy #2 describes (oversaturated elimination, unbound
// item, and similar "should never happen from well-formed input" cases).
func (c *Context) reportBug(span token.Span, code diagnostics.Code, message string) (core.Term, domain.Value) {
	c.Sink.Report(diagnostics.Diagnostic{
		Severity:  diagnostics.Bug,
		Code:      code,
		Message:   message,
		Primary:   diagnostics.Label{Span: span, Message: message},
		SessionID: c.Session,
	})
	return core.Prim{Name: core.ReportedError}, domain.VError{}
}

// isReportedError reports whether a value is either error sentinel
// (VError, or the neutral form Stuck(Prim(ReportedError))), so callers
// can skip cascading diagnostics once one has already fired (spec.md
// §9, "prevents cascade diagnostics after an initial failure").
func isReportedError(v domain.Value) bool {
	if _, ok := v.(domain.VError); ok {
		return true
	}
	s, ok := v.(domain.VStuck)
	return ok && s.Head.Kind == domain.HeadPrim && s.Head.Prim == core.ReportedError && len(s.Spine) == 0
}

func describeType(ctx *Context, v domain.Value) string {
	return core.Sprint(ctx.Eval.Quote(ctx.Len(), v))
}
