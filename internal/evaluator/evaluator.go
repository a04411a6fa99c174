// Package evaluator implements normalisation-by-evaluation (spec.md
// §4.1): eval, quote, normalize and the definitional-equality check,
// plus the primitive reduction rules and the Repr interpretation of
// formats as host types. It has no knowledge of the surface syntax or
// of the elaborator's unification queries — only of core terms, the
// semantic domain in internal/domain, and a thin Metas lookup it needs
// to read solved metavariables.
package evaluator

import (
	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
)

// Metas is the read side of the flexible-meta environment the evaluator
// needs: whether a given meta is solved, and what it solved to. The
// elaborator's metavariable context implements this; keeping it an
// interface here avoids an import cycle between evaluator and
// elaborator (the elaborator depends on the evaluator, not vice versa).
type Metas interface {
	Solution(core.MetaID) (domain.Value, bool)
}

// Evaluator bundles the meta lookup every NbE operation needs. It is
// stateless otherwise: eval/quote/normalize only close over their
// explicit Env/level arguments.
type Evaluator struct {
	Metas Metas
}

func New(metas Metas) *Evaluator {
	return &Evaluator{Metas: metas}
}
