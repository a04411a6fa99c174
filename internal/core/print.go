package core

import (
	"fmt"
	"strings"

	"github.com/fathomlang/fathom/internal/config"
)

// Sprint renders a core term back to a source-like string for
// diagnostics and test failure messages. It is not a parser-round-trip
// pretty-printer (that belongs to the out-of-scope documentation
// emitter, spec.md §1) — just enough structure that a type-mismatch
// diagnostic names the actual types involved instead of a raw %v
// struct dump (which, for the pointer-typed Name fields FunType/FunLit/
// Let carry, would print a bare hex address rather than the bound
// name).
//
// Metavariable ids print as "?3" normally; under config.IsTestMode (or
// IsLSPMode) they normalize to "?" so golden test expectations don't
// depend on allocation order, mirroring the teacher's TVar.String
// "t14" -> "t?" normalization.
func Sprint(t Term) string {
	var sb strings.Builder
	sprint(&sb, t)
	return sb.String()
}

func sprintMeta(sb *strings.Builder, id MetaID) {
	if config.IsTestMode || config.IsLSPMode {
		sb.WriteString("?")
		return
	}
	fmt.Fprintf(sb, "?%d", int(id))
}

func sprint(sb *strings.Builder, t Term) {
	switch n := t.(type) {
	case RigidVar:
		fmt.Fprintf(sb, "#%d", n.Index)
	case FlexibleVar:
		sprintMeta(sb, n.Meta)
	case FlexibleInsertion:
		sprintMeta(sb, n.Meta)
		sb.WriteString("!insert")
	case Ann:
		sprint(sb, n.Term)
		sb.WriteString(" : ")
		sprint(sb, n.Type)
	case Let:
		fmt.Fprintf(sb, "let %s = ", Name(n.Name))
		sprint(sb, n.Defn)
		sb.WriteString("; ")
		sprint(sb, n.Body)
	case Universe:
		sb.WriteString("Type")
	case FunType:
		fmt.Fprintf(sb, "fn (%s : ", Name(n.Name))
		sprint(sb, n.Domain)
		sb.WriteString(") -> ")
		sprint(sb, n.Codomain)
	case FunLit:
		fmt.Fprintf(sb, "fn %s => ", Name(n.Name))
		sprint(sb, n.Body)
	case FunApp:
		sprint(sb, n.Head)
		sb.WriteString(" ")
		sprint(sb, n.Arg)
	case RecordType:
		sprintFields(sb, n.Labels, n.Types, ":")
	case RecordLit:
		sprintFields(sb, n.Labels, n.Exprs, "=")
	case RecordProj:
		sprint(sb, n.Head)
		sb.WriteString(".")
		sb.WriteString(n.Label)
	case ArrayLit:
		sb.WriteString("[")
		for i, e := range n.Exprs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sprint(sb, e)
		}
		sb.WriteString("]")
	case FormatRecord:
		sb.WriteString("struct ")
		sprintFields(sb, n.Labels, n.Formats, ":")
	case FormatOverlap:
		sb.WriteString("overlap ")
		sprintFields(sb, n.Labels, n.Formats, ":")
	case Prim:
		sb.WriteString(n.Name.String())
	case ConstLit:
		sb.WriteString(n.Value.String())
	case ConstMatch:
		sb.WriteString("match ")
		sprint(sb, n.Scrutinee)
		sb.WriteString(" { ")
		for _, b := range n.Branches {
			sb.WriteString(b.Pattern.String())
			sb.WriteString(" => ")
			sprint(sb, b.Body)
			sb.WriteString(", ")
		}
		if n.Default != nil {
			sb.WriteString("_ => ")
			sprint(sb, n.Default)
		}
		sb.WriteString(" }")
	default:
		fmt.Fprintf(sb, "<%T>", t)
	}
}

func sprintFields(sb *strings.Builder, labels []string, terms []Term, sep string) {
	sb.WriteString("{ ")
	for i, l := range labels {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(l)
		sb.WriteString(" ")
		sb.WriteString(sep)
		sb.WriteString(" ")
		sprint(sb, terms[i])
	}
	sb.WriteString(" }")
}
