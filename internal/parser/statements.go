package parser

import (
	"strconv"

	"github.com/minilang-lang/minilang/internal/ast"
	"github.com/minilang-lang/minilang/internal/lexer"
)

// parseFunction parses one function definition:
//
//	func name(a: int, b: float) -> int { ... }
func (p *Parser) parseFunction() (*ast.Function, *Error) {
	start := p.currentSpan()

	if err := p.expect(lexer.FUNC); err != nil {
		return nil, err
	}

	name, nameSpan, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	var ret ast.Type
	if p.match(lexer.ARROW) {
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	span := mergeSpan(start, p.previousSpan())
	return ast.NewFunction(name, nameSpan, params, ret, body, span), nil
}

func (p *Parser) parseParameters() ([]*ast.Parameter, *Error) {
	var params []*ast.Parameter

	if p.check(lexer.RPAREN) {
		return params, nil
	}

	for {
		start := p.currentSpan()
		name, _, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}

		params = append(params, ast.NewParameter(name, typ, mergeSpan(start, p.previousSpan())))

		if !p.match(lexer.COMMA) {
			break
		}
	}

	return params, nil
}

// parseType parses a type annotation: a primitive keyword with an optional
// fixed-size array suffix (int[8]).
func (p *Parser) parseType() (ast.Type, *Error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.eofError("type")
	}

	var typ ast.Type
	switch tok.Type {
	case lexer.TYPE_INT:
		typ = ast.TypeInt
	case lexer.TYPE_FLOAT:
		typ = ast.TypeFloat
	case lexer.TYPE_STRING:
		typ = ast.TypeString
	case lexer.TYPE_BOOL:
		typ = ast.TypeBool
	default:
		return nil, &Error{
			Kind:     ErrMissingType,
			Expected: "type",
			Found:    describeToken(tok),
			Span:     tok.Span,
		}
	}
	p.pos++

	if p.match(lexer.LBRACKET) {
		sizeTok, ok := p.peek()
		if !ok {
			return nil, p.eofError("array size")
		}
		if sizeTok.Type != lexer.INT {
			return nil, &Error{
				Kind:     ErrUnexpectedToken,
				Expected: "integer array size",
				Found:    describeToken(sizeTok),
				Span:     sizeTok.Span,
			}
		}
		p.pos++
		size, _ := strconv.Atoi(sizeTok.Literal)
		if err := p.expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		typ = &ast.Array{Elem: typ, Size: size}
	}

	return typ, nil
}

// parseBlock parses a braced statement sequence.
func (p *Parser) parseBlock() (*ast.Block, *Error) {
	start := p.currentSpan()
	if err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}

	block := &ast.Block{}
	for !p.check(lexer.RBRACE) && !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}

	if err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	block.SetSpan(mergeSpan(start, p.previousSpan()))
	return block, nil
}

// parseStatement dispatches on the leading token. A leading identifier is
// ambiguous between an assignment statement and an expression statement;
// disambiguate speculatively with a cursor checkpoint.
func (p *Parser) parseStatement() (ast.Stmt, *Error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.eofError("statement")
	}

	switch tok.Type {
	case lexer.CONST:
		p.pos++
		return p.parseConstStatement()
	case lexer.LET:
		p.pos++
		return p.parseLetStatement()
	case lexer.DISPLAY:
		p.pos++
		return p.parseDisplayStatement()
	case lexer.IF:
		p.pos++
		return p.parseIfStatement()
	case lexer.WHILE:
		p.pos++
		return p.parseWhileStatement()
	case lexer.DO:
		p.pos++
		return p.parseDoWhileStatement()
	case lexer.FOR:
		p.pos++
		return p.parseForStatement()
	case lexer.SEND:
		p.pos++
		return p.parseReturnStatement()
	case lexer.BREAK:
		p.pos++
		start := p.previousSpan()
		if err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return ast.NewBreakStmt(mergeSpan(start, p.previousSpan())), nil
	case lexer.CONTINUE:
		p.pos++
		start := p.previousSpan()
		if err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return ast.NewContinueStmt(mergeSpan(start, p.previousSpan())), nil
	case lexer.LBRACE:
		return p.parseBlock()
	}

	if tok.Type == lexer.IDENT && p.startsAssignment() {
		return p.parseAssignmentStatement()
	}

	return p.parseExpressionStatement()
}

// startsAssignment reports whether the statement under the cursor is an
// assignment (name = ... or name[...] = ...). It speculatively consumes the
// identifier and a balanced bracketed suffix, then restores the checkpoint.
func (p *Parser) startsAssignment() bool {
	checkpoint := p.pos
	defer func() { p.pos = checkpoint }()

	p.pos++ // identifier

	if p.check(lexer.ASSIGN) {
		return true
	}

	if p.check(lexer.LBRACKET) {
		depth := 0
		for !p.isAtEnd() {
			switch {
			case p.check(lexer.LBRACKET):
				depth++
				p.pos++
			case p.check(lexer.RBRACKET):
				depth--
				p.pos++
				if depth == 0 {
					return p.check(lexer.ASSIGN)
				}
			default:
				p.pos++
			}
		}
	}

	return false
}

// parseAssignmentStatement parses x = value; or arr[index] = value;
func (p *Parser) parseAssignmentStatement() (ast.Stmt, *Error) {
	start := p.currentSpan()

	name, nameSpan, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	var target ast.AssignTarget
	if p.match(lexer.LBRACKET) {
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		target = ast.NewIndexTarget(name, index, mergeSpan(nameSpan, p.previousSpan()))
	} else {
		target = ast.NewSimpleTarget(name, nameSpan)
	}

	if err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	span := mergeSpan(start, p.previousSpan())
	return ast.NewExprStmt(ast.NewAssignExpr(target, value, span), span), nil
}

func (p *Parser) parseConstStatement() (ast.Stmt, *Error) {
	start := p.previousSpan()

	name, _, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}

	// Constants must be initialized.
	if err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return ast.NewConstStmt(name, typ, value, mergeSpan(start, p.previousSpan())), nil
}

func (p *Parser) parseLetStatement() (ast.Stmt, *Error) {
	start := p.previousSpan()

	name, _, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}

	var value ast.Expr
	if p.match(lexer.ASSIGN) {
		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return ast.NewLetStmt(name, typ, value, mergeSpan(start, p.previousSpan())), nil
}

func (p *Parser) parseDisplayStatement() (ast.Stmt, *Error) {
	start := p.previousSpan()

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	exprs := []ast.Expr{expr}

	for p.match(lexer.COMMA) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return ast.NewDisplayStmt(exprs, mergeSpan(start, p.previousSpan())), nil
}

// parseIfStatement parses a conditional. An 'else if' recurses so that a
// chain of any length nests as two-branch nodes, each nested If wrapped in
// a single-statement else block.
func (p *Parser) parseIfStatement() (*ast.IfStmt, *Error) {
	start := p.previousSpan()

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBlock *ast.Block
	if p.match(lexer.ELSE) {
		if p.match(lexer.IF) {
			nested, err := p.parseIfStatement()
			if err != nil {
				return nil, err
			}
			elseBlock = &ast.Block{Stmts: []ast.Stmt{nested}}
			elseBlock.SetSpan(nested.Span())
		} else {
			elseBlock, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
	}

	end := then.Span()
	if elseBlock != nil {
		end = elseBlock.Span()
	}

	return ast.NewIfStmt(cond, then, elseBlock, mergeSpan(start, end)), nil
}

func (p *Parser) parseWhileStatement() (ast.Stmt, *Error) {
	start := p.previousSpan()

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewWhileStmt(cond, body, mergeSpan(start, body.Span())), nil
}

func (p *Parser) parseDoWhileStatement() (ast.Stmt, *Error) {
	start := p.previousSpan()

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.WHILE); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return ast.NewDoWhileStmt(body, cond, mergeSpan(start, p.previousSpan())), nil
}

// parseForStatement parses for init; cond; update { body }. Every clause
// may be omitted; init and update reuse the assignment disambiguation.
func (p *Parser) parseForStatement() (ast.Stmt, *Error) {
	start := p.previousSpan()

	var init ast.Stmt
	switch {
	case p.match(lexer.SEMICOLON):
		// no init clause
	case p.match(lexer.LET):
		let, err := p.parseLetStatement()
		if err != nil {
			return nil, err
		}
		init = let
	default:
		stmt, err := p.parseForInit()
		if err != nil {
			return nil, err
		}
		init = stmt
	}

	var cond ast.Expr
	if !p.check(lexer.SEMICOLON) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		cond = expr
	}
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	var update ast.Expr
	if !p.check(lexer.LBRACE) {
		expr, err := p.parseForUpdate()
		if err != nil {
			return nil, err
		}
		update = expr
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewForStmt(init, cond, update, body, mergeSpan(start, body.Span())), nil
}

// parseForInit parses the init clause: an assignment or a bare expression,
// both terminated by ';'.
func (p *Parser) parseForInit() (ast.Stmt, *Error) {
	if tok, ok := p.peek(); ok && tok.Type == lexer.IDENT && p.startsAssignment() {
		return p.parseAssignmentStatement()
	}
	return p.parseExpressionStatement()
}

// parseForUpdate parses the update clause: an assignment or expression with
// no trailing semicolon.
func (p *Parser) parseForUpdate() (ast.Expr, *Error) {
	if tok, ok := p.peek(); ok && tok.Type == lexer.IDENT {
		checkpoint := p.pos
		name, nameSpan, _ := p.expectIdent()
		if p.match(lexer.ASSIGN) {
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			span := mergeSpan(nameSpan, p.previousSpan())
			return ast.NewAssignExpr(ast.NewSimpleTarget(name, nameSpan), value, span), nil
		}
		p.pos = checkpoint
	}
	return p.parseExpression()
}

func (p *Parser) parseReturnStatement() (ast.Stmt, *Error) {
	start := p.previousSpan()

	var value ast.Expr
	if !p.check(lexer.SEMICOLON) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value = expr
	}

	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return ast.NewReturnStmt(value, mergeSpan(start, p.previousSpan())), nil
}

func (p *Parser) parseExpressionStatement() (ast.Stmt, *Error) {
	start := p.currentSpan()

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return ast.NewExprStmt(expr, mergeSpan(start, p.previousSpan())), nil
}
