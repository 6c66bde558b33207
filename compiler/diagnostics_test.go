package compiler

import (
	"go/token"
	"strings"
	"testing"
)

func TestDiagnostics_ErrIgnoresWarnings(t *testing.T) {
	// Arrange
	var ds Diagnostics
	ds.warnf(token.Position{Filename: "a.tsz", Line: 1, Column: 1}, "just a warning")

	// Act & Assert
	if err := ds.Err(); err != nil {
		t.Errorf("Expected nil error with only warnings, got %v", err)
	}

	ds.errorf(token.Position{Filename: "a.tsz", Line: 3, Column: 2}, `";"`, "late")
	ds.errorf(token.Position{Filename: "a.tsz", Line: 2, Column: 7}, "", "early")
	err := ds.Err()
	if err == nil {
		t.Fatal("Expected an error")
	}
	errs := err.(Diagnostics)
	if len(errs) != 2 || errs[0].Msg != "early" {
		t.Errorf("Expected 2 sorted errors starting with 'early', got %v", errs)
	}
	if got := errs[1].Error(); got != `a.tsz:3:2: late (expected ";")` {
		t.Errorf("Expected formatted diagnostic, got %q", got)
	}
	if !strings.HasPrefix(err.Error(), "2 problems:\n") {
		t.Errorf("Expected problem count header, got %q", err.Error())
	}
}

func TestDiagnostics_Report(t *testing.T) {
	// Arrange
	src := []byte("declare X;\ndiv;\nblink2;\np;\n")
	ds := Diagnostics{{Pos: token.Position{Filename: "x.tsz", Line: 3, Column: 1}, Severity: SeverityWarning, Msg: "unknown host tag <blink2>"}}

	// Act
	report := ds.Report(src)

	// Assert
	for _, want := range []string{
		"Warning in x.tsz:3:1: unknown host tag <blink2>",
		"     1 | declare X;",
		">    3 | blink2;",
		"     4 | p;",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("Expected report to contain %q, got:\n%s", want, report)
		}
	}
}
