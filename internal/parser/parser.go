package parser

import (
	"fmt"

	"github.com/minilang-lang/minilang/internal/ast"
	"github.com/minilang-lang/minilang/internal/diag"
	"github.com/minilang-lang/minilang/internal/lexer"
)

// ErrorKind classifies the structural violation that stopped the parse.
type ErrorKind int

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrMissingSemicolon
	ErrMissingClosingBrace
	ErrInvalidExpression
	ErrMissingType
	ErrUnexpectedEOF
)

// Error is the single fatal parse error. The parser fails fast: the first
// structural violation is reported and no partial AST is returned.
type Error struct {
	Kind     ErrorKind
	Expected string // what the parser required (unexpected-token/eof kinds)
	Found    string // what it saw instead
	Span     lexer.Span
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnexpectedToken:
		return fmt.Sprintf("unexpected token: expected %s, found %s", e.Expected, e.Found)
	case ErrMissingSemicolon:
		return "missing semicolon"
	case ErrMissingClosingBrace:
		return "missing closing brace"
	case ErrInvalidExpression:
		return "invalid expression"
	case ErrMissingType:
		return "missing type annotation"
	case ErrUnexpectedEOF:
		return fmt.Sprintf("unexpected end of input: expected %s", e.Expected)
	default:
		return "parse error"
	}
}

func (k ErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnexpectedToken:
		return diag.CodeParseUnexpectedToken
	case ErrMissingSemicolon:
		return diag.CodeParseMissingSemicolon
	case ErrMissingClosingBrace:
		return diag.CodeParseMissingClosingBrace
	case ErrInvalidExpression:
		return diag.CodeParseInvalidExpression
	case ErrMissingType:
		return diag.CodeParseMissingType
	case ErrUnexpectedEOF:
		return diag.CodeParseUnexpectedEOF
	default:
		return diag.Code("PARSE_UNKNOWN_ERROR")
	}
}

func (e *Error) help() string {
	switch e.Kind {
	case ErrUnexpectedToken:
		return fmt.Sprintf("expected %s, but found %s", e.Expected, e.Found)
	case ErrMissingSemicolon:
		return "add a semicolon ';' at the end of the statement"
	case ErrMissingClosingBrace:
		return "add a closing brace '}' to match the opening brace"
	case ErrInvalidExpression:
		return "this doesn't look like a valid expression"
	case ErrMissingType:
		return "variables require type annotations: let name: type = value;"
	case ErrUnexpectedEOF:
		return "the program ended unexpectedly; check for missing closing braces or incomplete statements"
	default:
		return ""
	}
}

// ToDiagnostic converts the parse error into a shared diagnostic structure.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Error(),
		Help:     e.help(),
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
	if d.Span.IsValid() {
		d = d.WithPrimarySpan(d.Span, "")
	}
	return d
}

// Parser implements recursive descent over an addressable token sequence.
// The cursor is a plain index so speculative parsing is a checkpoint/restore
// of one integer; the only place that needs it is statement-level
// assignment disambiguation (and the equivalent decisions inside for-loop
// clauses), which is bounded to a single lookahead decision.
type Parser struct {
	tokens []lexer.Token
	source string
	pos    int
}

// New creates a parser over a token sequence. The original source text is
// retained for string-interpolation re-lexing.
func New(tokens []lexer.Token, source string) *Parser {
	return &Parser{tokens: tokens, source: source}
}

// Parse consumes the whole token sequence and returns the program, or the
// first syntax error encountered.
func Parse(tokens []lexer.Token, source string) (*ast.Program, *Error) {
	return New(tokens, source).ParseProgram()
}

// ParseProgram parses a complete program: a sequence of function definitions.
func (p *Parser) ParseProgram() (*ast.Program, *Error) {
	program := &ast.Program{}

	for !p.isAtEnd() {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		program.Functions = append(program.Functions, fn)
	}

	if n := len(program.Functions); n > 0 {
		program.SetSpan(mergeSpan(program.Functions[0].Span(), program.Functions[n-1].Span()))
	}

	return program, nil
}

// ==================== cursor helpers ====================

func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.tokens)
}

// peek returns the current token without consuming it.
func (p *Parser) peek() (lexer.Token, bool) {
	if p.isAtEnd() {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

// advance consumes and returns the current token.
func (p *Parser) advance() (lexer.Token, bool) {
	if p.isAtEnd() {
		return lexer.Token{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

// check reports whether the current token has the given type.
func (p *Parser) check(tt lexer.TokenType) bool {
	tok, ok := p.peek()
	return ok && tok.Type == tt
}

// match consumes the current token if it has the given type.
func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.pos++
		return true
	}
	return false
}

// currentSpan is the span of the token under the cursor, falling back to the
// previous token's span at end of input so every error carries a location.
func (p *Parser) currentSpan() lexer.Span {
	if tok, ok := p.peek(); ok {
		return tok.Span
	}
	return p.previousSpan()
}

func (p *Parser) previousSpan() lexer.Span {
	if p.pos > 0 && p.pos-1 < len(p.tokens) {
		return p.tokens[p.pos-1].Span
	}
	return lexer.Span{}
}

// expect consumes a token of the given type or fails with a kind-specific
// error: semicolons and closing braces get their own diagnostic kinds.
func (p *Parser) expect(tt lexer.TokenType) *Error {
	if p.match(tt) {
		return nil
	}

	tok, ok := p.peek()
	if !ok {
		return p.eofError(string(tt))
	}

	kind := ErrUnexpectedToken
	switch tt {
	case lexer.SEMICOLON:
		kind = ErrMissingSemicolon
	case lexer.RBRACE:
		kind = ErrMissingClosingBrace
	}

	return &Error{
		Kind:     kind,
		Expected: fmt.Sprintf("'%s'", tt),
		Found:    describeToken(tok),
		Span:     tok.Span,
	}
}

// expectIdent consumes an identifier token and returns its name.
func (p *Parser) expectIdent() (string, lexer.Span, *Error) {
	tok, ok := p.peek()
	if !ok {
		return "", lexer.Span{}, p.eofError("identifier")
	}
	if tok.Type != lexer.IDENT {
		return "", lexer.Span{}, &Error{
			Kind:     ErrUnexpectedToken,
			Expected: "identifier",
			Found:    describeToken(tok),
			Span:     tok.Span,
		}
	}
	p.pos++
	return tok.Literal, tok.Span, nil
}

// eofError reports an unexpected end of input. The span is backfilled from
// the last consumed token so the diagnostic still points into the source.
func (p *Parser) eofError(expected string) *Error {
	span := p.previousSpan()
	if span.Column > 0 {
		span.Column += span.End - span.Start
	}
	span.Start = span.End
	span.End = span.Start + 1
	return &Error{
		Kind:     ErrUnexpectedEOF,
		Expected: expected,
		Found:    "end of input",
		Span:     span,
	}
}

func describeToken(tok lexer.Token) string {
	switch tok.Type {
	case lexer.IDENT:
		return fmt.Sprintf("identifier '%s'", tok.Literal)
	case lexer.INT, lexer.FLOAT:
		return fmt.Sprintf("number '%s'", tok.Literal)
	case lexer.STRING:
		return "string literal"
	default:
		return fmt.Sprintf("'%s'", tok.Literal)
	}
}

// mergeSpan returns a span covering both inputs, assuming start begins no
// later than end.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start
	if end.End > span.End {
		span.End = end.End
	}
	return span
}
