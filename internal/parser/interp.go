package parser

import (
	"strings"
	"unicode"

	"github.com/minilang-lang/minilang/internal/ast"
	"github.com/minilang-lang/minilang/internal/lexer"
)

// parseStringLiteral turns a lexed string token into either a plain string
// literal or, when the text contains {expr} segments, an interpolated
// literal whose expression parts are re-lexed and parsed in isolation.
func (p *Parser) parseStringLiteral(tok lexer.Token) (ast.Expr, *Error) {
	text := tok.Literal

	if !strings.ContainsRune(text, '{') {
		return ast.NewStringLit(text, tok.Span), nil
	}

	var parts []ast.StringPart
	var buf strings.Builder

	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if runes[i] != '{' {
			buf.WriteRune(runes[i])
			i++
			continue
		}

		// Collect the braced segment, tracking nesting so expressions
		// that themselves contain braces split correctly.
		depth := 1
		j := i + 1
		for j < len(runes) && depth > 0 {
			switch runes[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			j++
		}
		if depth != 0 {
			return nil, &Error{
				Kind:  ErrInvalidExpression,
				Found: "unclosed '{' in interpolated string",
				Span:  tok.Span,
			}
		}

		inner := strings.TrimSpace(string(runes[i+1 : j-1]))
		if inner == "" {
			return nil, &Error{
				Kind:  ErrInvalidExpression,
				Found: "empty interpolation '{}'",
				Span:  tok.Span,
			}
		}

		if buf.Len() > 0 {
			parts = append(parts, ast.TextPart{Text: buf.String()})
			buf.Reset()
		}

		expr, err := p.parseInterpolatedExpr(inner, tok.Span)
		if err != nil {
			return nil, err
		}
		parts = append(parts, ast.ExprPart{X: expr})

		i = j
	}

	if buf.Len() > 0 {
		parts = append(parts, ast.TextPart{Text: buf.String()})
	}

	return ast.NewInterpLit(parts, tok.Span), nil
}

// parseInterpolatedExpr parses one {…} segment. The common case of a bare
// variable name skips the lexer round trip.
func (p *Parser) parseInterpolatedExpr(src string, span lexer.Span) (ast.Expr, *Error) {
	if isIdentifier(src) {
		return ast.NewIdent(src, span), nil
	}

	tokens, lexErr := lexer.Tokenize(src, span.Filename)
	if lexErr != nil {
		return nil, &Error{
			Kind:  ErrInvalidExpression,
			Found: "invalid interpolated expression: " + lexErr.Message,
			Span:  span,
		}
	}

	sub := New(tokens, src)
	expr, err := sub.parseExpression()
	if err != nil {
		err.Span = span
		return nil, err
	}
	if !sub.isAtEnd() {
		leftover, _ := sub.peek()
		return nil, &Error{
			Kind:  ErrInvalidExpression,
			Found: "trailing " + describeToken(leftover) + " in interpolated expression",
			Span:  span,
		}
	}

	return expr, nil
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return len(s) > 0 && lexer.LookupIdent(s) == lexer.IDENT
}
