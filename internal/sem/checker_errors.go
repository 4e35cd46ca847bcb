package sem

import (
	"fmt"
	"strings"

	"github.com/minilang-lang/minilang/internal/diag"
	"github.com/minilang-lang/minilang/internal/lexer"
)

func toDiagSpan(span lexer.Span) diag.Span {
	return diag.Span{
		Filename: span.Filename,
		Line:     span.Line,
		Column:   span.Column,
		Start:    span.Start,
		End:      span.End,
	}
}

// pendingDiag builds one diagnostic fluently before appending it to the
// checker's error or warning list.
type pendingDiag struct {
	d       diag.Diagnostic
	warning bool
}

func (c *Checker) errorAt(code diag.Code, span lexer.Span, msg string) *pendingDiag {
	d := diag.Diagnostic{
		Stage:    diag.StageSemantic,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  msg,
		Span:     toDiagSpan(span),
	}
	if d.Span.IsValid() {
		d = d.WithPrimarySpan(d.Span, "")
	}
	return &pendingDiag{d: d}
}

func (c *Checker) warnAt(code diag.Code, span lexer.Span, msg string) *pendingDiag {
	d := diag.Diagnostic{
		Stage:    diag.StageSemantic,
		Severity: diag.SeverityWarning,
		Code:     code,
		Message:  msg,
		Span:     toDiagSpan(span),
	}
	if d.Span.IsValid() {
		d = d.WithPrimarySpan(d.Span, "")
	}
	return &pendingDiag{d: d, warning: true}
}

func (p *pendingDiag) withLabel(label string) *pendingDiag {
	if n := len(p.d.LabeledSpans); n > 0 {
		p.d.LabeledSpans[n-1].Label = label
	}
	return p
}

func (p *pendingDiag) secondary(span lexer.Span, label string) *pendingDiag {
	p.d = p.d.WithSecondarySpan(toDiagSpan(span), label)
	return p
}

func (p *pendingDiag) withSuggestion(s string) *pendingDiag {
	p.d = p.d.WithSuggestion(s)
	return p
}

func (p *pendingDiag) withHelp(h string) *pendingDiag {
	p.d = p.d.WithHelp(h)
	return p
}

func (p *pendingDiag) emit(c *Checker) {
	if p.warning {
		c.warnings = append(c.warnings, p.d)
		return
	}
	c.errors = append(c.errors, p.d)
}

// suggestNames renders a "did you mean" suggestion from similar-name
// candidates, falling back to a declare hint when nothing is close.
func suggestNames(name string, similar []string) string {
	if len(similar) == 0 {
		return fmt.Sprintf("did you forget to declare '%s'?", name)
	}
	quoted := make([]string, len(similar))
	for i, s := range similar {
		quoted[i] = "'" + s + "'"
	}
	return "did you mean " + strings.Join(quoted, " or ") + "?"
}
