package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented tree rendering of the program, one node per
// line. Intended for debugging and the CLI's ast command, not for
// machine consumption.
func Fprint(w io.Writer, program *Program) {
	p := printer{w: w}
	for _, fn := range program.Functions {
		p.function(fn)
	}
}

type printer struct {
	w     io.Writer
	depth int
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.depth), fmt.Sprintf(format, args...))
}

func (p *printer) nested(fn func()) {
	p.depth++
	fn()
	p.depth--
}

func (p *printer) function(fn *Function) {
	sig := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		sig[i] = fmt.Sprintf("%s: %s", param.Name, param.Type)
	}
	ret := ""
	if fn.ReturnType != nil {
		ret = " -> " + fn.ReturnType.String()
	}
	p.line("Function %s(%s)%s", fn.Name, strings.Join(sig, ", "), ret)
	p.nested(func() { p.block(fn.Body) })
}

func (p *printer) block(b *Block) {
	for _, stmt := range b.Stmts {
		p.stmt(stmt)
	}
}

func (p *printer) stmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *LetStmt:
		p.line("Let %s: %s", s.Name, s.Type)
		if s.Value != nil {
			p.nested(func() { p.expr(s.Value) })
		}
	case *ConstStmt:
		p.line("Const %s: %s", s.Name, s.Type)
		p.nested(func() { p.expr(s.Value) })
	case *DisplayStmt:
		p.line("Display")
		p.nested(func() {
			for _, e := range s.Exprs {
				p.expr(e)
			}
		})
	case *IfStmt:
		p.line("If")
		p.nested(func() {
			p.expr(s.Cond)
			p.line("Then")
			p.nested(func() { p.block(s.Then) })
			if s.Else != nil {
				p.line("Else")
				p.nested(func() { p.block(s.Else) })
			}
		})
	case *WhileStmt:
		p.line("While")
		p.nested(func() {
			p.expr(s.Cond)
			p.block(s.Body)
		})
	case *DoWhileStmt:
		p.line("DoWhile")
		p.nested(func() {
			p.block(s.Body)
			p.expr(s.Cond)
		})
	case *ForStmt:
		p.line("For")
		p.nested(func() {
			if s.Init != nil {
				p.stmt(s.Init)
			}
			if s.Cond != nil {
				p.expr(s.Cond)
			}
			if s.Update != nil {
				p.expr(s.Update)
			}
			p.block(s.Body)
		})
	case *ReturnStmt:
		p.line("Return")
		if s.Value != nil {
			p.nested(func() { p.expr(s.Value) })
		}
	case *BreakStmt:
		p.line("Break")
	case *ContinueStmt:
		p.line("Continue")
	case *Block:
		p.line("Block")
		p.nested(func() { p.block(s) })
	case *ExprStmt:
		p.expr(s.X)
	}
}

func (p *printer) expr(expr Expr) {
	switch e := expr.(type) {
	case *Ident:
		p.line("Ident %s", e.Name)
	case *IntLit:
		p.line("Int %d", e.Value)
	case *FloatLit:
		p.line("Float %g", e.Value)
	case *BoolLit:
		p.line("Bool %t", e.Value)
	case *StringLit:
		p.line("String %q", e.Value)
	case *InterpLit:
		p.line("InterpString")
		p.nested(func() {
			for _, part := range e.Parts {
				switch pt := part.(type) {
				case TextPart:
					p.line("Text %q", pt.Text)
				case ExprPart:
					p.expr(pt.X)
				}
			}
		})
	case *ArrayLit:
		p.line("Array")
		p.nested(func() {
			for _, elem := range e.Elems {
				p.expr(elem)
			}
		})
	case *BinaryExpr:
		p.line("Binary %s", e.Op)
		p.nested(func() {
			p.expr(e.Left)
			p.expr(e.Right)
		})
	case *UnaryExpr:
		p.line("Unary %s", e.Op)
		p.nested(func() { p.expr(e.X) })
	case *CallExpr:
		p.line("Call %s", e.Name)
		p.nested(func() {
			for _, arg := range e.Args {
				p.expr(arg)
			}
		})
	case *IndexExpr:
		p.line("Index")
		p.nested(func() {
			p.expr(e.Base)
			p.expr(e.Index)
		})
	case *AssignExpr:
		switch t := e.Target.(type) {
		case *SimpleTarget:
			p.line("Assign %s", t.Name)
			p.nested(func() { p.expr(e.Value) })
		case *IndexTarget:
			p.line("AssignIndex %s", t.Name)
			p.nested(func() {
				p.expr(t.Index)
				p.expr(e.Value)
			})
		}
	}
}
