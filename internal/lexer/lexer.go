package lexer

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/minilang-lang/minilang/internal/diag"
)

type ErrorKind int

const (
	ErrUnexpectedChar ErrorKind = iota
	ErrUnterminatedString
	ErrUnterminatedBlockComment
	ErrIntegerOverflow
)

// Error is a fatal lexing failure with location context.
type Error struct {
	Kind    ErrorKind
	Message string
	Span    Span
}

func (e *Error) Error() string { return e.Message }

func (k ErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnexpectedChar:
		return diag.CodeLexUnexpectedChar
	case ErrUnterminatedString:
		return diag.CodeLexUnterminatedString
	case ErrUnterminatedBlockComment:
		return diag.CodeLexUnterminatedBlockComment
	case ErrIntegerOverflow:
		return diag.CodeLexIntegerOverflow
	default:
		return diag.Code("LEX_UNKNOWN_ERROR")
	}
}

func (k ErrorKind) help() string {
	switch k {
	case ErrUnexpectedChar:
		return "valid characters include letters, digits, and operators (+, -, *, /, %, ...)"
	case ErrUnterminatedString:
		return "strings must be closed with a matching double quote (\")"
	case ErrUnterminatedBlockComment:
		return "block comments opened with '##' must be closed with '##'"
	case ErrIntegerOverflow:
		return "integer literals must fit between -2147483648 and 2147483647"
	default:
		return ""
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	d := diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Help:     e.Kind.help(),
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

// Lexer turns MiniLang source text into a token stream.
type Lexer struct {
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
	filename string
}

// New creates a new lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{
		input:  []rune(input),
		pos:    -1,
		line:   1,
		column: 0,
	}
	l.read()
	return l
}

// SetFilename attributes all emitted spans to the provided filename.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// Tokenize scans the whole input and returns the token sequence the parser
// consumes. It stops at the first lexing failure.
func Tokenize(input string, filename string) ([]Token, *Error) {
	l := New(input)
	l.SetFilename(filename)

	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// read advances the lexer to the next character, keeping line/column in sync
// with the character at pos.
func (l *Lexer) read() {
	l.pos++
	prev := l.pos - 1

	if prev >= 0 && prev < len(l.input) && l.input[prev] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	if l.pos >= len(l.input) {
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
}

// peek returns the next character without advancing.
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) here() Span {
	return Span{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.column,
		Start:    l.pos,
		End:      l.pos + 1,
	}
}

func (l *Lexer) spanFrom(start Span) Span {
	start.End = l.pos
	return start
}

// Next returns the next token, skipping whitespace and comments.
func (l *Lexer) Next() (Token, *Error) {
	for {
		l.skipWhitespace()
		if l.ch != '#' {
			break
		}
		if err := l.skipComment(); err != nil {
			return Token{}, err
		}
	}

	start := l.here()

	switch {
	case l.ch == 0:
		return Token{Type: EOF, Span: start}, nil
	case isLetter(l.ch):
		return l.lexIdentifier(start), nil
	case unicode.IsDigit(l.ch):
		return l.lexNumber(start)
	case l.ch == '"':
		return l.lexString(start)
	}

	makeTok := func(tt TokenType, lit string) Token {
		return Token{Type: tt, Literal: lit, Span: l.spanFrom(start)}
	}

	ch := l.ch
	switch ch {
	case '=':
		l.read()
		if l.ch == '=' {
			l.read()
			return makeTok(EQ, "=="), nil
		}
		return makeTok(ASSIGN, "="), nil
	case '!':
		if l.peek() == '=' {
			l.read()
			l.read()
			return makeTok(NOT_EQ, "!="), nil
		}
	case '<':
		l.read()
		if l.ch == '=' {
			l.read()
			return makeTok(LE, "<="), nil
		}
		return makeTok(LT, "<"), nil
	case '>':
		l.read()
		if l.ch == '=' {
			l.read()
			return makeTok(GE, ">="), nil
		}
		return makeTok(GT, ">"), nil
	case '-':
		l.read()
		if l.ch == '>' {
			l.read()
			return makeTok(ARROW, "->"), nil
		}
		return makeTok(MINUS, "-"), nil
	case '+':
		l.read()
		return makeTok(PLUS, "+"), nil
	case '*':
		l.read()
		return makeTok(ASTERISK, "*"), nil
	case '/':
		l.read()
		return makeTok(SLASH, "/"), nil
	case '%':
		l.read()
		return makeTok(PERCENT, "%"), nil
	case ',':
		l.read()
		return makeTok(COMMA, ","), nil
	case ':':
		l.read()
		return makeTok(COLON, ":"), nil
	case ';':
		l.read()
		return makeTok(SEMICOLON, ";"), nil
	case '(':
		l.read()
		return makeTok(LPAREN, "("), nil
	case ')':
		l.read()
		return makeTok(RPAREN, ")"), nil
	case '{':
		l.read()
		return makeTok(LBRACE, "{"), nil
	case '}':
		l.read()
		return makeTok(RBRACE, "}"), nil
	case '[':
		l.read()
		return makeTok(LBRACKET, "["), nil
	case ']':
		l.read()
		return makeTok(RBRACKET, "]"), nil
	}

	return Token{}, &Error{
		Kind:    ErrUnexpectedChar,
		Message: fmt.Sprintf("unexpected character %q", ch),
		Span:    start,
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' {
		l.read()
	}
}

// skipComment consumes a '#' line comment or a '## ... ##' block comment.
func (l *Lexer) skipComment() *Error {
	start := l.here()
	if l.peek() == '#' {
		l.read() // first '#'
		l.read() // second '#'
		for {
			if l.ch == 0 {
				return &Error{
					Kind:    ErrUnterminatedBlockComment,
					Message: "unterminated block comment",
					Span:    start,
				}
			}
			if l.ch == '#' && l.peek() == '#' {
				l.read()
				l.read()
				return nil
			}
			l.read()
		}
	}

	for l.ch != '\n' && l.ch != 0 {
		l.read()
	}
	return nil
}

func (l *Lexer) lexIdentifier(start Span) Token {
	for isLetter(l.ch) || unicode.IsDigit(l.ch) {
		l.read()
	}
	text := string(l.input[start.Start:l.pos])
	return Token{
		Type:    LookupIdent(text),
		Literal: text,
		Span:    l.spanFrom(start),
	}
}

func (l *Lexer) lexNumber(start Span) (Token, *Error) {
	for unicode.IsDigit(l.ch) {
		l.read()
	}

	isFloat := false
	if l.ch == '.' && unicode.IsDigit(l.peek()) {
		isFloat = true
		l.read()
		for unicode.IsDigit(l.ch) {
			l.read()
		}
	}

	text := string(l.input[start.Start:l.pos])
	span := l.spanFrom(start)

	if isFloat {
		return Token{Type: FLOAT, Literal: text, Span: span}, nil
	}

	if _, err := strconv.ParseInt(text, 10, 32); err != nil {
		return Token{}, &Error{
			Kind:    ErrIntegerOverflow,
			Message: fmt.Sprintf("integer literal out of range: %q", text),
			Span:    span,
		}
	}
	return Token{Type: INT, Literal: text, Span: span}, nil
}

func (l *Lexer) lexString(start Span) (Token, *Error) {
	l.read() // opening quote

	var value []rune
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return Token{}, &Error{
				Kind:    ErrUnterminatedString,
				Message: "unterminated string literal",
				Span:    start,
			}
		}
		if l.ch == '\\' {
			switch l.peek() {
			case 'n':
				value = append(value, '\n')
				l.read()
			case 't':
				value = append(value, '\t')
				l.read()
			case '"':
				value = append(value, '"')
				l.read()
			case '\\':
				value = append(value, '\\')
				l.read()
			default:
				value = append(value, l.ch)
			}
		} else {
			value = append(value, l.ch)
		}
		l.read()
	}
	l.read() // closing quote

	return Token{Type: STRING, Literal: string(value), Span: l.spanFrom(start)}, nil
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}
