package diagnostics

import "testing"

func TestBagHasErrorsOnlyForBugOrError(t *testing.T) {
	bag := NewBag()
	bag.Report(Diagnostic{Severity: Warning, Message: "w"})
	bag.Report(Diagnostic{Severity: Help, Message: "h"})
	if bag.HasErrors() {
		t.Fatalf("warning/help only should not count as an error")
	}

	bag.Report(Diagnostic{Severity: Error, Message: "e"})
	if !bag.HasErrors() {
		t.Fatalf("an Error-severity diagnostic should count")
	}
}

func TestBagPreservesReportOrder(t *testing.T) {
	bag := NewBag()
	bag.Report(Diagnostic{Code: CodeUnboundName, Message: "first"})
	bag.Report(Diagnostic{Code: CodeTypeMismatch, Message: "second"})

	if len(bag.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(bag.Diagnostics))
	}
	if bag.Diagnostics[0].Message != "first" || bag.Diagnostics[1].Message != "second" {
		t.Fatalf("Bag should preserve report order, got %v", bag.Diagnostics)
	}
}

func TestDiagnosticErrorFormatsSeverityCodeMessage(t *testing.T) {
	d := Diagnostic{Severity: Error, Code: CodeTypeMismatch, Message: "boom"}
	want := "error[type-mismatch]: boom"
	if got := d.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
