package sem

import (
	"fmt"

	"github.com/minilang-lang/minilang/internal/ast"
	"github.com/minilang-lang/minilang/internal/diag"
	"github.com/minilang-lang/minilang/internal/lexer"
)

// inferExpr computes the type of an expression bottom-up, reporting every
// violation it finds. A nil return means the type could not be determined;
// callers skip checks that depend on it so one bad sub-expression does not
// cascade into spurious follow-on errors.
func (c *Checker) inferExpr(expr ast.Expr) ast.Type {
	switch e := expr.(type) {
	case *ast.IntLit:
		return ast.TypeInt
	case *ast.FloatLit:
		return ast.TypeFloat
	case *ast.BoolLit:
		return ast.TypeBool
	case *ast.StringLit:
		return ast.TypeString
	case *ast.InterpLit:
		for _, part := range e.Parts {
			if p, ok := part.(ast.ExprPart); ok {
				c.inferExpr(p.X)
			}
		}
		return ast.TypeString
	case *ast.ArrayLit:
		return c.inferArrayLit(e)
	case *ast.Ident:
		return c.inferIdent(e)
	case *ast.BinaryExpr:
		return c.inferBinary(e)
	case *ast.UnaryExpr:
		return c.inferUnary(e)
	case *ast.CallExpr:
		return c.checkCall(e, false)
	case *ast.IndexExpr:
		return c.inferIndex(e)
	case *ast.AssignExpr:
		return c.checkAssign(e)
	}
	return nil
}

// inferArrayLit requires every element to share one type. An empty literal
// defaults to int[0].
func (c *Checker) inferArrayLit(e *ast.ArrayLit) ast.Type {
	if len(e.Elems) == 0 {
		return &ast.Array{Elem: ast.TypeInt, Size: 0}
	}

	first := c.inferExpr(e.Elems[0])
	if first == nil {
		return nil
	}
	for _, elem := range e.Elems[1:] {
		et := c.inferExpr(elem)
		if et != nil && !ast.TypesEqual(et, first) {
			c.errorAt(diag.CodeSemTypeMismatch, elem.Span(),
				fmt.Sprintf("array elements must share one type: expected %s, found %s", first, et)).
				withLabel(fmt.Sprintf("expected %s, found %s", first, et)).
				emit(c)
		}
	}

	return &ast.Array{Elem: first, Size: len(e.Elems)}
}

func (c *Checker) inferIdent(e *ast.Ident) ast.Type {
	sym := c.table.Lookup(e.Name)
	if sym == nil {
		similar := c.table.FindSimilarNames(e.Name, 3)
		c.errorAt(diag.CodeSemUndefinedVariable, e.Span(),
			fmt.Sprintf("undefined variable '%s'", e.Name)).
			withSuggestion(suggestNames(e.Name, similar)).
			emit(c)
		return nil
	}
	sym.Used = true
	return sym.Type
}

func (c *Checker) inferBinary(e *ast.BinaryExpr) ast.Type {
	lt := c.inferExpr(e.Left)
	rt := c.inferExpr(e.Right)
	if lt == nil || rt == nil {
		return nil
	}

	switch e.Op {
	case lexer.PLUS, lexer.MINUS, lexer.ASTERISK, lexer.SLASH, lexer.PERCENT:
		// Arithmetic never widens: int with int, float with float.
		if ast.TypesEqual(lt, rt) && isNumeric(lt) {
			return lt
		}
		c.binaryMismatch(e, lt, rt, "arithmetic requires two ints or two floats")
		return nil

	case lexer.EQ, lexer.NOT_EQ:
		if ast.TypesEqual(lt, rt) {
			return ast.TypeBool
		}
		c.binaryMismatch(e, lt, rt, "equality requires both operands to have the same type")
		return nil

	case lexer.LT, lexer.GT, lexer.LE, lexer.GE:
		if ast.TypesEqual(lt, rt) && isNumeric(lt) {
			return ast.TypeBool
		}
		c.binaryMismatch(e, lt, rt, "ordering comparison requires two ints or two floats")
		return nil

	case lexer.AND, lexer.OR:
		if ast.TypesEqual(lt, ast.TypeBool) && ast.TypesEqual(rt, ast.TypeBool) {
			return ast.TypeBool
		}
		c.binaryMismatch(e, lt, rt, fmt.Sprintf("%s requires both operands to be bool", e.Op))
		return nil
	}

	return nil
}

func (c *Checker) binaryMismatch(e *ast.BinaryExpr, lt, rt ast.Type, help string) {
	c.errorAt(diag.CodeSemTypeMismatch, e.Span(),
		fmt.Sprintf("invalid operands to '%s': %s and %s", e.Op, lt, rt)).
		withHelp(help).
		emit(c)
}

func (c *Checker) inferUnary(e *ast.UnaryExpr) ast.Type {
	xt := c.inferExpr(e.X)
	if xt == nil {
		return nil
	}

	switch e.Op {
	case lexer.NOT:
		if ast.TypesEqual(xt, ast.TypeBool) {
			return ast.TypeBool
		}
		c.errorAt(diag.CodeSemTypeMismatch, e.X.Span(),
			fmt.Sprintf("NOT requires a bool operand, found %s", xt)).emit(c)
		return nil
	case lexer.MINUS:
		if isNumeric(xt) {
			return xt
		}
		c.errorAt(diag.CodeSemTypeMismatch, e.X.Span(),
			fmt.Sprintf("unary '-' requires an int or float operand, found %s", xt)).emit(c)
		return nil
	}

	return nil
}

// checkCall validates a call against the function registry. asStatement
// permits calls to void functions, which are rejected in expression
// position because they produce no value.
func (c *Checker) checkCall(e *ast.CallExpr, asStatement bool) ast.Type {
	sig := c.table.LookupFunction(e.Name)
	if sig == nil {
		similar := c.table.FindSimilarFunctions(e.Name, 3)
		c.errorAt(diag.CodeSemUndefinedFunction, e.NameSpan,
			fmt.Sprintf("undefined function '%s'", e.Name)).
			withSuggestion(suggestNames(e.Name, similar)).
			emit(c)
		for _, arg := range e.Args {
			c.inferExpr(arg)
		}
		return nil
	}

	if len(e.Args) != len(sig.Params) {
		c.errorAt(diag.CodeSemArgumentCountMismatch, e.Span(),
			fmt.Sprintf("function '%s' expects %d argument(s), found %d",
				e.Name, len(sig.Params), len(e.Args))).
			secondary(sig.DefinedAt, "defined here").
			emit(c)
	}

	for i, arg := range e.Args {
		at := c.inferExpr(arg)
		if i >= len(sig.Params) || at == nil {
			continue
		}
		if !ast.TypesEqual(at, sig.Params[i]) {
			c.errorAt(diag.CodeSemTypeMismatch, arg.Span(),
				fmt.Sprintf("argument %d of '%s' expects %s, found %s",
					i+1, e.Name, sig.Params[i], at)).
				withLabel(fmt.Sprintf("expected %s, found %s", sig.Params[i], at)).
				emit(c)
		}
	}

	if sig.ReturnType == nil && !asStatement {
		c.errorAt(diag.CodeSemTypeMismatch, e.Span(),
			fmt.Sprintf("function '%s' does not return a value and cannot be used in an expression", e.Name)).
			emit(c)
		return nil
	}

	return sig.ReturnType
}

func (c *Checker) inferIndex(e *ast.IndexExpr) ast.Type {
	bt := c.inferExpr(e.Base)
	it := c.inferExpr(e.Index)

	if it != nil && !ast.TypesEqual(it, ast.TypeInt) {
		c.errorAt(diag.CodeSemTypeMismatch, e.Index.Span(),
			fmt.Sprintf("array index must be int, found %s", it)).emit(c)
	}

	if bt == nil {
		return nil
	}
	arr, ok := bt.(*ast.Array)
	if !ok {
		c.errorAt(diag.CodeSemTypeMismatch, e.Base.Span(),
			fmt.Sprintf("cannot index a value of type %s", bt)).emit(c)
		return nil
	}
	return arr.Elem
}

// checkAssign validates both assignment forms. The target has to exist
// already: assignment never declares.
func (c *Checker) checkAssign(e *ast.AssignExpr) ast.Type {
	vt := c.inferExpr(e.Value)

	var name string
	switch t := e.Target.(type) {
	case *ast.SimpleTarget:
		name = t.Name
	case *ast.IndexTarget:
		name = t.Name
	}

	sym := c.table.Lookup(name)
	if sym == nil {
		similar := c.table.FindSimilarNames(name, 3)
		c.errorAt(diag.CodeSemUndefinedVariable, e.Target.Span(),
			fmt.Sprintf("undefined variable '%s'", name)).
			withSuggestion(suggestNames(name, similar)).
			emit(c)
		return vt
	}

	if sym.Kind == KindConstant {
		c.errorAt(diag.CodeSemAssignToConstant, e.Target.Span(),
			fmt.Sprintf("cannot assign to constant '%s'", name)).
			secondary(sym.DefinedAt, "declared 'const' here").
			emit(c)
		return vt
	}

	switch t := e.Target.(type) {
	case *ast.SimpleTarget:
		if vt != nil && !ast.TypesEqual(vt, sym.Type) {
			c.errorAt(diag.CodeSemTypeMismatch, e.Value.Span(),
				fmt.Sprintf("cannot assign a value of type %s to '%s' of type %s",
					vt, name, sym.Type)).
				withLabel(fmt.Sprintf("expected %s, found %s", sym.Type, vt)).
				emit(c)
		}
	case *ast.IndexTarget:
		sym.Used = true
		if it := c.inferExpr(t.Index); it != nil && !ast.TypesEqual(it, ast.TypeInt) {
			c.errorAt(diag.CodeSemTypeMismatch, t.Index.Span(),
				fmt.Sprintf("array index must be int, found %s", it)).emit(c)
		}
		arr, ok := sym.Type.(*ast.Array)
		if !ok {
			c.errorAt(diag.CodeSemTypeMismatch, t.Span(),
				fmt.Sprintf("cannot index '%s' of type %s", name, sym.Type)).emit(c)
			return vt
		}
		if vt != nil && !ast.TypesEqual(vt, arr.Elem) {
			c.errorAt(diag.CodeSemTypeMismatch, e.Value.Span(),
				fmt.Sprintf("cannot assign a value of type %s to an element of '%s' (%s)",
					vt, name, sym.Type)).
				withLabel(fmt.Sprintf("expected %s, found %s", arr.Elem, vt)).
				emit(c)
		}
	}

	return vt
}

func isNumeric(t ast.Type) bool {
	return ast.TypesEqual(t, ast.TypeInt) || ast.TypesEqual(t, ast.TypeFloat)
}
