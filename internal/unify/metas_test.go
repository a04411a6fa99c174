package unify

import (
	"testing"

	"github.com/fathomlang/fathom/internal/domain"
)

func TestMetaContextNameFallback(t *testing.T) {
	m := NewMetaContext()
	named := m.Fresh(domain.VUniverse{}, "elem")
	anon := m.Fresh(domain.VUniverse{}, "")

	if got := m.Name(named); got != "elem" {
		t.Fatalf("Name(named) = %q, want elem", got)
	}
	if got := m.Name(anon); got != "?1" {
		t.Fatalf("Name(anonymous) = %q, want ?1", got)
	}
}

func TestMetaContextUnsolvedTracksCreationOrder(t *testing.T) {
	m := NewMetaContext()
	a := m.Fresh(domain.VUniverse{}, "a")
	b := m.Fresh(domain.VUniverse{}, "b")
	m.Assign(a, domain.VUniverse{})

	unsolved := m.Unsolved()
	if len(unsolved) != 1 || unsolved[0] != b {
		t.Fatalf("Unsolved() = %v, want only %v", unsolved, b)
	}
	if !m.IsSolved(a) {
		t.Fatalf("a should be solved after Assign")
	}
}
