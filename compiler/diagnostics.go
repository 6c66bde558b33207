package compiler

import (
	"fmt"
	"go/token"
	"sort"
	"strings"
)

// Severity of a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a positioned compile error or warning. Expected, when set,
// names the construct the compiler was looking for.
type Diagnostic struct {
	Pos      token.Position
	Severity Severity
	Msg      string
	Expected string
}

func (d Diagnostic) Error() string {
	var sb strings.Builder
	if d.Pos.IsValid() {
		sb.WriteString(d.Pos.String())
		sb.WriteString(": ")
	}
	if d.Severity == SeverityWarning {
		sb.WriteString("warning: ")
	}
	sb.WriteString(d.Msg)
	if d.Expected != "" {
		sb.WriteString(" (expected ")
		sb.WriteString(d.Expected)
		sb.WriteString(")")
	}
	return sb.String()
}

// Diagnostics is a list of diagnostics. As an error it reports every entry.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	switch len(ds) {
	case 0:
		return "no errors"
	case 1:
		return ds[0].Error()
	}
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.Error()
	}
	return fmt.Sprintf("%d problems:\n%s", len(ds), strings.Join(lines, "\n"))
}

func (ds *Diagnostics) errorf(pos token.Position, expected, format string, args ...any) {
	*ds = append(*ds, Diagnostic{Pos: pos, Severity: SeverityError, Msg: fmt.Sprintf(format, args...), Expected: expected})
}

func (ds *Diagnostics) warnf(pos token.Position, format string, args ...any) {
	*ds = append(*ds, Diagnostic{Pos: pos, Severity: SeverityWarning, Msg: fmt.Sprintf(format, args...)})
}

// Errors returns the entries with SeverityError.
func (ds Diagnostics) Errors() Diagnostics {
	return ds.filter(SeverityError)
}

// Warnings returns the entries with SeverityWarning.
func (ds Diagnostics) Warnings() Diagnostics {
	return ds.filter(SeverityWarning)
}

func (ds Diagnostics) filter(s Severity) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// Err returns the errors of ds sorted by position, or nil when there are
// none. Warnings never make Err non-nil.
func (ds Diagnostics) Err() error {
	errs := ds.Errors()
	if len(errs) == 0 {
		return nil
	}
	errs.Sort()
	return errs
}

// Sort orders ds by file, line and column.
func (ds Diagnostics) Sort() {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i].Pos, ds[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// Report formats every diagnostic with the surrounding source lines.
func (ds Diagnostics) Report(src []byte) string {
	var sb strings.Builder
	for _, d := range ds {
		label := "Compilation Error"
		if d.Severity == SeverityWarning {
			label = "Warning"
		}
		fmt.Fprintf(&sb, "%s in %s: %s", label, d.Pos, d.Msg)
		if d.Expected != "" {
			fmt.Fprintf(&sb, " (expected %s)", d.Expected)
		}
		sb.WriteString("\n")
		if d.Pos.Line > 0 {
			sb.WriteString(getContextLines(string(src), d.Pos.Line, 2))
		}
	}
	return sb.String()
}
