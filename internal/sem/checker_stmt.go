package sem

import (
	"fmt"

	"github.com/minilang-lang/minilang/internal/ast"
	"github.com/minilang-lang/minilang/internal/diag"
	"github.com/minilang-lang/minilang/internal/lexer"
)

// checkStmts checks a statement sequence in order, warning about anything
// that trails a return in the same block.
func (c *Checker) checkStmts(stmts []ast.Stmt) {
	returned := false
	for _, stmt := range stmts {
		if returned {
			c.warnAt(diag.CodeWarnUnreachableCode, stmt.Span(),
				"unreachable code after 'send'").emit(c)
		}
		c.checkStmt(stmt)
		if _, ok := stmt.(*ast.ReturnStmt); ok {
			returned = true
		}
	}
}

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		c.checkDeclaration(s.Name, KindVariable, s.Type, s.Value, s.Span())
	case *ast.ConstStmt:
		c.checkDeclaration(s.Name, KindConstant, s.Type, s.Value, s.Span())
	case *ast.DisplayStmt:
		for _, expr := range s.Exprs {
			c.inferExpr(expr)
		}
	case *ast.IfStmt:
		c.checkCondition(s.Cond, "if")
		c.checkBlock(s.Then)
		if s.Else != nil {
			c.checkBlock(s.Else)
		}
	case *ast.WhileStmt:
		c.checkCondition(s.Cond, "while")
		c.loopDepth++
		c.checkBlock(s.Body)
		c.loopDepth--
	case *ast.DoWhileStmt:
		c.loopDepth++
		c.checkBlock(s.Body)
		c.loopDepth--
		c.checkCondition(s.Cond, "do-while")
	case *ast.ForStmt:
		c.checkForStmt(s)
	case *ast.ReturnStmt:
		c.checkReturn(s)
	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			c.errorAt(diag.CodeSemBreakOutsideLoop, s.Span(),
				"'break' outside of a loop").emit(c)
		}
	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.errorAt(diag.CodeSemBreakOutsideLoop, s.Span(),
				"'continue' outside of a loop").emit(c)
		}
	case *ast.Block:
		c.checkBlock(s)
	case *ast.ExprStmt:
		c.checkExprStmt(s)
	}
}

// checkBlock checks a nested block in its own scope frame. Symbols that die
// with the frame get their unused-variable warnings here.
func (c *Checker) checkBlock(block *ast.Block) {
	c.table.EnterScope()
	c.checkStmts(block.Stmts)
	c.reportUnused(c.table.ExitScope())
}

// checkDeclaration handles let and const: the initializer must match the
// declared type exactly, and the name must be new to the current frame.
func (c *Checker) checkDeclaration(name string, kind SymbolKind, typ ast.Type, value ast.Expr, span lexer.Span) {
	if value != nil {
		if vt := c.inferExpr(value); vt != nil && !ast.TypesEqual(vt, typ) {
			c.errorAt(diag.CodeSemTypeMismatch, value.Span(),
				fmt.Sprintf("cannot initialize %s '%s' of type %s with a value of type %s",
					kind, name, typ, vt)).
				withLabel(fmt.Sprintf("expected %s, found %s", typ, vt)).
				emit(c)
		}
	}

	if outer := c.table.LookupOuter(name); outer != nil {
		c.warnAt(diag.CodeWarnShadowedVariable, span,
			fmt.Sprintf("'%s' shadows a %s from an enclosing scope", name, outer.Kind)).
			secondary(outer.DefinedAt, "originally defined here").
			emit(c)
	}

	sym := &Symbol{Name: name, Kind: kind, Type: typ, DefinedAt: span}
	if existing, ok := c.table.Insert(sym); !ok {
		c.errorAt(diag.CodeSemDuplicateDefinition, span,
			fmt.Sprintf("'%s' is already defined in this scope", name)).
			secondary(existing.DefinedAt, "originally defined here").
			emit(c)
	}
}

// checkForStmt checks the three clauses and the body inside one shared
// scope: a variable declared in the init clause is visible in the body and
// goes out of scope with the loop.
func (c *Checker) checkForStmt(s *ast.ForStmt) {
	c.table.EnterScope()

	if s.Init != nil {
		c.checkStmt(s.Init)
	}
	if s.Cond != nil {
		c.checkCondition(s.Cond, "for")
	}
	if s.Update != nil {
		c.inferExpr(s.Update)
	}

	c.loopDepth++
	c.checkStmts(s.Body.Stmts)
	c.loopDepth--

	c.reportUnused(c.table.ExitScope())
}

func (c *Checker) checkReturn(s *ast.ReturnStmt) {
	if c.currentReturn == nil {
		if s.Value != nil {
			c.errorAt(diag.CodeSemTypeMismatch, s.Span(),
				fmt.Sprintf("function '%s' does not declare a return type but 'send' has a value",
					c.currentFunction)).
				withHelp("add a return type: func name(...) -> type").
				emit(c)
		}
		return
	}

	if s.Value == nil {
		c.errorAt(diag.CodeSemTypeMismatch, s.Span(),
			fmt.Sprintf("function '%s' must return a value of type %s",
				c.currentFunction, c.currentReturn)).emit(c)
		return
	}

	if vt := c.inferExpr(s.Value); vt != nil && !ast.TypesEqual(vt, c.currentReturn) {
		c.errorAt(diag.CodeSemTypeMismatch, s.Value.Span(),
			fmt.Sprintf("function '%s' returns %s but 'send' has a value of type %s",
				c.currentFunction, c.currentReturn, vt)).
			withLabel(fmt.Sprintf("expected %s, found %s", c.currentReturn, vt)).
			emit(c)
	}
}

func (c *Checker) checkCondition(cond ast.Expr, construct string) {
	if ct := c.inferExpr(cond); ct != nil && !ast.TypesEqual(ct, ast.TypeBool) {
		c.errorAt(diag.CodeSemTypeMismatch, cond.Span(),
			fmt.Sprintf("%s condition must be bool, found %s", construct, ct)).
			withLabel(fmt.Sprintf("expected bool, found %s", ct)).
			emit(c)
	}
}

// checkExprStmt checks a bare expression statement. A call to a void
// function is legal here even though it is rejected in expression position.
func (c *Checker) checkExprStmt(s *ast.ExprStmt) {
	switch x := s.X.(type) {
	case *ast.CallExpr:
		c.checkCall(x, true)
	case *ast.AssignExpr:
		c.checkAssign(x)
	default:
		c.inferExpr(s.X)
	}
}
