package lexer_test

import (
	"testing"

	"github.com/minilang-lang/minilang/internal/lexer"
)

func tokenize(t *testing.T, src string) []lexer.Token {
	t.Helper()

	tokens, err := lexer.Tokenize(src, "test.ml")
	if err != nil {
		t.Fatalf("unexpected lex error: %s", err)
	}
	return tokens
}

func assertTypes(t *testing.T, tokens []lexer.Token, want ...lexer.TokenType) {
	t.Helper()

	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, tt := range want {
		if tokens[i].Type != tt {
			t.Errorf("token %d: expected %q, got %q (%q)", i, tt, tokens[i].Type, tokens[i].Literal)
		}
	}
}

func TestTokenizeDeclaration(t *testing.T) {
	tokens := tokenize(t, `let count: int = 42;`)

	assertTypes(t, tokens,
		lexer.LET, lexer.IDENT, lexer.COLON, lexer.TYPE_INT,
		lexer.ASSIGN, lexer.INT, lexer.SEMICOLON)

	if got := tokens[1].Literal; got != "count" {
		t.Fatalf("expected identifier %q, got %q", "count", got)
	}
	if got := tokens[5].Literal; got != "42" {
		t.Fatalf("expected literal %q, got %q", "42", got)
	}
}

func TestTokenizeOperators(t *testing.T) {
	tokens := tokenize(t, `== != <= >= < > -> = + - * / %`)

	assertTypes(t, tokens,
		lexer.EQ, lexer.NOT_EQ, lexer.LE, lexer.GE, lexer.LT, lexer.GT,
		lexer.ARROW, lexer.ASSIGN, lexer.PLUS, lexer.MINUS,
		lexer.ASTERISK, lexer.SLASH, lexer.PERCENT)
}

func TestTokenizeKeywords(t *testing.T) {
	tokens := tokenize(t, `func display send if else while do for break continue AND OR NOT true false`)

	assertTypes(t, tokens,
		lexer.FUNC, lexer.DISPLAY, lexer.SEND, lexer.IF, lexer.ELSE,
		lexer.WHILE, lexer.DO, lexer.FOR, lexer.BREAK, lexer.CONTINUE,
		lexer.AND, lexer.OR, lexer.NOT, lexer.TRUE, lexer.FALSE)
}

func TestTokenizeComments(t *testing.T) {
	const src = `
# a line comment
let x: int = 1; # trailing
## a block
   comment ##
let y: int = 2;
`
	tokens := tokenize(t, src)

	assertTypes(t, tokens,
		lexer.LET, lexer.IDENT, lexer.COLON, lexer.TYPE_INT, lexer.ASSIGN, lexer.INT, lexer.SEMICOLON,
		lexer.LET, lexer.IDENT, lexer.COLON, lexer.TYPE_INT, lexer.ASSIGN, lexer.INT, lexer.SEMICOLON)
}

func TestTokenizeStringEscapes(t *testing.T) {
	tokens := tokenize(t, `"a\nb\t\"c\"\\"`)

	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(tokens))
	}
	if got, want := tokens[0].Literal, "a\nb\t\"c\"\\"; got != want {
		t.Fatalf("expected decoded literal %q, got %q", want, got)
	}
}

func TestTokenizeFloat(t *testing.T) {
	tokens := tokenize(t, `3.14`)

	assertTypes(t, tokens, lexer.FLOAT)
	if got := tokens[0].Literal; got != "3.14" {
		t.Fatalf("expected literal %q, got %q", "3.14", got)
	}
}

func TestTokenizeSpans(t *testing.T) {
	tokens := tokenize(t, "let x: int = 1;\nlet y: int = 2;")

	second := tokens[7] // let on line 2
	if second.Type != lexer.LET {
		t.Fatalf("expected LET, got %q", second.Type)
	}
	if second.Span.Line != 2 || second.Span.Column != 1 {
		t.Fatalf("expected span 2:1, got %d:%d", second.Span.Line, second.Span.Column)
	}
}

func TestIntegerOverflow(t *testing.T) {
	_, err := lexer.Tokenize(`let x: int = 99999999999;`, "test.ml")

	if err == nil {
		t.Fatalf("expected an error for an out-of-range integer")
	}
	if err.Kind != lexer.ErrIntegerOverflow {
		t.Fatalf("expected ErrIntegerOverflow, got %v", err.Kind)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := lexer.Tokenize(`display "oops`, "test.ml")

	if err == nil {
		t.Fatalf("expected an error for an unterminated string")
	}
	if err.Kind != lexer.ErrUnterminatedString {
		t.Fatalf("expected ErrUnterminatedString, got %v", err.Kind)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	_, err := lexer.Tokenize(`let x: int = 1 @ 2;`, "test.ml")

	if err == nil {
		t.Fatalf("expected an error for an unexpected character")
	}
	if err.Kind != lexer.ErrUnexpectedChar {
		t.Fatalf("expected ErrUnexpectedChar, got %v", err.Kind)
	}
}
