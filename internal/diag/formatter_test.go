package diag_test

import (
	"strings"
	"testing"

	"github.com/minilang-lang/minilang/internal/diag"
)

const testSource = `func main() {
	let x: int = true;
}
`

func render(t *testing.T, d diag.Diagnostic) string {
	t.Helper()

	var buf strings.Builder
	f := diag.NewPlainFormatter(&buf)
	f.AddSource("test.ml", testSource)
	f.Format(d)
	return buf.String()
}

func TestFormatHeaderAndSnippet(t *testing.T) {
	d := diag.Diagnostic{
		Stage:    diag.StageSemantic,
		Severity: diag.SeverityError,
		Code:     diag.CodeSemTypeMismatch,
		Message:  "cannot initialize variable 'x' of type int with a value of type bool",
		Span:     diag.Span{Filename: "test.ml", Line: 2, Column: 15, Start: 27, End: 31},
	}
	d = d.WithPrimarySpan(d.Span, "expected int, found bool")

	out := render(t, d)

	for _, want := range []string{
		"error[SEM_TYPE_MISMATCH]",
		"cannot initialize variable 'x'",
		"test.ml:2:15",
		"let x: int = true;",
		"^",
		"expected int, found bool",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSecondarySpan(t *testing.T) {
	d := diag.Diagnostic{
		Stage:    diag.StageSemantic,
		Severity: diag.SeverityError,
		Code:     diag.CodeSemDuplicateDefinition,
		Message:  "'x' is already defined in this scope",
		Span:     diag.Span{Filename: "test.ml", Line: 2, Column: 6, Start: 18, End: 19},
	}
	d = d.WithPrimarySpan(d.Span, "")
	d = d.WithSecondarySpan(diag.Span{Filename: "test.ml", Line: 2, Column: 6, Start: 18, End: 19}, "originally defined here")

	out := render(t, d)

	if !strings.Contains(out, "originally defined here") {
		t.Errorf("output missing secondary label:\n%s", out)
	}
}

func TestFormatWarning(t *testing.T) {
	d := diag.Diagnostic{
		Stage:    diag.StageSemantic,
		Severity: diag.SeverityWarning,
		Code:     diag.CodeWarnUnusedVariable,
		Message:  "variable 'x' is never used",
		Span:     diag.Span{Filename: "test.ml", Line: 2, Column: 6, Start: 18, End: 19},
	}
	d = d.WithPrimarySpan(d.Span, "")

	out := render(t, d)

	if !strings.Contains(out, "warning[WARN_UNUSED_VARIABLE]") {
		t.Errorf("output missing warning header:\n%s", out)
	}
}

func TestFormatWithHelpAndSuggestion(t *testing.T) {
	d := diag.Diagnostic{
		Stage:    diag.StageSemantic,
		Severity: diag.SeverityError,
		Code:     diag.CodeSemUndefinedVariable,
		Message:  "undefined variable 'countre'",
		Span:     diag.Span{Filename: "test.ml", Line: 2, Column: 6, Start: 18, End: 19},
	}
	d = d.WithPrimarySpan(d.Span, "")
	d = d.WithSuggestion("did you mean 'counter'?")
	d = d.WithHelp("declare the variable before use")

	out := render(t, d)

	if !strings.Contains(out, "did you mean 'counter'?") {
		t.Errorf("output missing suggestion:\n%s", out)
	}
	if !strings.Contains(out, "declare the variable before use") {
		t.Errorf("output missing help:\n%s", out)
	}
}

func TestFormatWithoutSpanFallsBack(t *testing.T) {
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     diag.CodeParseUnexpectedEOF,
		Message:  "unexpected end of input",
	}

	out := render(t, d)

	if !strings.Contains(out, "unexpected end of input") {
		t.Errorf("output missing message:\n%s", out)
	}
}
