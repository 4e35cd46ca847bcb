package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageLexer    Stage = "lexer"
	StageParser   Stage = "parser"
	StageSemantic Stage = "semantic"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// LabeledSpan represents a span with an optional label.
type LabeledSpan struct {
	Span  Span
	Label string // optional label (e.g. "expected `int`, found `string`")
	Style string // "primary" or "secondary" - primary spans are emphasized
}

// Code is a stable machine-readable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexUnexpectedChar           Code = "LEX_UNEXPECTED_CHAR"
	CodeLexUnterminatedString       Code = "LEX_UNTERMINATED_STRING"
	CodeLexUnterminatedBlockComment Code = "LEX_UNTERMINATED_BLOCK_COMMENT"
	CodeLexIntegerOverflow          Code = "LEX_INTEGER_OVERFLOW"

	// Parser errors
	CodeParseUnexpectedToken     Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseMissingSemicolon    Code = "PARSE_MISSING_SEMICOLON"
	CodeParseMissingClosingBrace Code = "PARSE_MISSING_CLOSING_BRACE"
	CodeParseInvalidExpression   Code = "PARSE_INVALID_EXPRESSION"
	CodeParseMissingType         Code = "PARSE_MISSING_TYPE"
	CodeParseUnexpectedEOF       Code = "PARSE_UNEXPECTED_EOF"

	// Semantic errors
	CodeSemUndefinedVariable     Code = "SEM_UNDEFINED_VARIABLE"
	CodeSemUndefinedFunction     Code = "SEM_UNDEFINED_FUNCTION"
	CodeSemTypeMismatch          Code = "SEM_TYPE_MISMATCH"
	CodeSemDuplicateDefinition   Code = "SEM_DUPLICATE_DEFINITION"
	CodeSemArgumentCountMismatch Code = "SEM_ARGUMENT_COUNT"
	CodeSemMissingReturn         Code = "SEM_MISSING_RETURN"
	CodeSemBreakOutsideLoop      Code = "SEM_BREAK_OUTSIDE_LOOP"
	CodeSemAssignToConstant      Code = "SEM_ASSIGN_TO_CONSTANT"

	// Warnings
	CodeWarnUnusedVariable   Code = "WARN_UNUSED_VARIABLE"
	CodeWarnUnreachableCode  Code = "WARN_UNREACHABLE_CODE"
	CodeWarnShadowedVariable Code = "WARN_SHADOWED_VARIABLE"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a compiler diagnostic surfaced to end-users. It is pure
// data; rendering is the Formatter's concern.
type Diagnostic struct {
	Stage      Stage
	Severity   Severity
	Code       Code
	Message    string
	Span       Span   // primary span
	Suggestion string // optional suggestion for fixing the error
	// LabeledSpans allows multiple spans with labels. The first primary
	// span is emphasized, secondary spans annotate related locations
	// (e.g. "originally defined here").
	LabeledSpans []LabeledSpan
	Notes        []string
	Help         string
}

// WithSuggestion returns a new diagnostic with the given suggestion.
func (d Diagnostic) WithSuggestion(suggestion string) Diagnostic {
	d.Suggestion = suggestion
	return d
}

// WithLabeledSpan adds a labeled span to the diagnostic.
func (d Diagnostic) WithLabeledSpan(span Span, label string, style string) Diagnostic {
	if style == "" {
		style = "primary"
	}
	d.LabeledSpans = append(d.LabeledSpans, LabeledSpan{
		Span:  span,
		Label: label,
		Style: style,
	})
	return d
}

// WithPrimarySpan adds a primary labeled span.
func (d Diagnostic) WithPrimarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "primary")
}

// WithSecondarySpan adds a secondary labeled span.
func (d Diagnostic) WithSecondarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "secondary")
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
