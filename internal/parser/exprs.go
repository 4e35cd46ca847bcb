package parser

import (
	"strconv"

	"github.com/minilang-lang/minilang/internal/ast"
	"github.com/minilang-lang/minilang/internal/lexer"
)

// Expression parsing is a precedence cascade: each level parses the level
// above it, then folds trailing operators left-associatively.
//
//	or > and > equality > comparison > addition > multiplication > unary > postfix > primary

func (p *Parser) parseExpression() (ast.Expr, *Error) {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() (ast.Expr, *Error) {
	return p.parseBinaryLevel(p.parseLogicalAnd, lexer.OR)
}

func (p *Parser) parseLogicalAnd() (ast.Expr, *Error) {
	return p.parseBinaryLevel(p.parseEquality, lexer.AND)
}

func (p *Parser) parseEquality() (ast.Expr, *Error) {
	return p.parseBinaryLevel(p.parseComparison, lexer.EQ, lexer.NOT_EQ)
}

func (p *Parser) parseComparison() (ast.Expr, *Error) {
	return p.parseBinaryLevel(p.parseAddition, lexer.LT, lexer.GT, lexer.LE, lexer.GE)
}

func (p *Parser) parseAddition() (ast.Expr, *Error) {
	return p.parseBinaryLevel(p.parseMultiplication, lexer.PLUS, lexer.MINUS)
}

func (p *Parser) parseMultiplication() (ast.Expr, *Error) {
	return p.parseBinaryLevel(p.parseUnary, lexer.ASTERISK, lexer.SLASH, lexer.PERCENT)
}

// parseBinaryLevel folds a run of same-precedence operators into a
// left-leaning tree.
func (p *Parser) parseBinaryLevel(next func() (ast.Expr, *Error), ops ...lexer.TokenType) (ast.Expr, *Error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok {
			return left, nil
		}
		matched := false
		for _, op := range ops {
			if tok.Type == op {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
		p.pos++

		right, err := next()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpr(tok.Type, left, right, mergeSpan(left.Span(), right.Span()))
	}
}

// parseUnary parses prefix NOT and unary minus. Prefix operators are
// right-associative, so the operand recurses into this level.
func (p *Parser) parseUnary() (ast.Expr, *Error) {
	tok, ok := p.peek()
	if ok && (tok.Type == lexer.NOT || tok.Type == lexer.MINUS) {
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(tok.Type, operand, mergeSpan(tok.Span, operand.Span())), nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary followed by call and index suffixes. Calls
// are only valid directly on a name; indexing chains freely.
func (p *Parser) parsePostfix() (ast.Expr, *Error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.check(lexer.LPAREN):
			ident, ok := expr.(*ast.Ident)
			if !ok {
				tok, _ := p.peek()
				return nil, &Error{
					Kind:  ErrInvalidExpression,
					Found: "call of a non-name expression",
					Span:  tok.Span,
				}
			}
			p.pos++
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			if err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
			expr = ast.NewCallExpr(ident.Name, ident.Span(), args, mergeSpan(ident.Span(), p.previousSpan()))

		case p.check(lexer.LBRACKET):
			p.pos++
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(lexer.RBRACKET); err != nil {
				return nil, err
			}
			expr = ast.NewIndexExpr(expr, index, mergeSpan(expr.Span(), p.previousSpan()))

		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArguments() ([]ast.Expr, *Error) {
	var args []ast.Expr

	if p.check(lexer.RPAREN) {
		return args, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if !p.match(lexer.COMMA) {
			break
		}
	}

	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expr, *Error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.eofError("expression")
	}

	switch tok.Type {
	case lexer.INT:
		p.pos++
		// Range was checked during lexing; ParseInt cannot fail here.
		v, _ := strconv.ParseInt(tok.Literal, 10, 32)
		return ast.NewIntLit(int32(v), tok.Span), nil

	case lexer.FLOAT:
		p.pos++
		v, _ := strconv.ParseFloat(tok.Literal, 64)
		return ast.NewFloatLit(v, tok.Span), nil

	case lexer.STRING:
		p.pos++
		return p.parseStringLiteral(tok)

	case lexer.TRUE:
		p.pos++
		return ast.NewBoolLit(true, tok.Span), nil

	case lexer.FALSE:
		p.pos++
		return ast.NewBoolLit(false, tok.Span), nil

	case lexer.IDENT:
		p.pos++
		return ast.NewIdent(tok.Literal, tok.Span), nil

	case lexer.LPAREN:
		p.pos++
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	}

	return nil, &Error{
		Kind:  ErrInvalidExpression,
		Found: describeToken(tok),
		Span:  tok.Span,
	}
}

func (p *Parser) parseArrayLiteral() (ast.Expr, *Error) {
	start := p.currentSpan()
	p.pos++ // '['

	var elems []ast.Expr
	if !p.check(lexer.RBRACKET) {
		for {
			elem, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)

			if !p.match(lexer.COMMA) {
				break
			}
		}
	}

	if err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}

	return ast.NewArrayLit(elems, mergeSpan(start, p.previousSpan())), nil
}
