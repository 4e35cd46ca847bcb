package sem

import (
	"fmt"
	"strings"

	"github.com/minilang-lang/minilang/internal/ast"
	"github.com/minilang-lang/minilang/internal/diag"
)

// Checker performs semantic analysis on a parsed program. Unlike the
// fail-fast parser it accumulates every error it can find: a failed check
// on one statement never stops checking of the rest.
type Checker struct {
	table    *SymbolTable
	errors   []diag.Diagnostic
	warnings []diag.Diagnostic

	currentFunction string
	currentReturn   ast.Type // nil while checking a void function
	loopDepth       int
}

// NewChecker creates a checker with a fresh symbol table. A checker is
// scoped to one program; runs never share state.
func NewChecker() *Checker {
	return &Checker{table: NewSymbolTable()}
}

// Check analyzes a program and returns all diagnostics found. Errors and
// warnings come back separately; warnings never make analysis fail.
func Check(program *ast.Program) (errors, warnings []diag.Diagnostic) {
	c := NewChecker()
	c.CheckProgram(program)
	return c.Errors(), c.Warnings()
}

// CheckProgram runs both analysis passes: first every function signature is
// registered so bodies can reference functions defined later, then every
// body is checked against the complete registry.
func (c *Checker) CheckProgram(program *ast.Program) {
	for _, fn := range program.Functions {
		c.registerFunction(fn)
	}
	for _, fn := range program.Functions {
		c.checkFunction(fn)
	}
}

// Errors returns the accumulated semantic errors.
func (c *Checker) Errors() []diag.Diagnostic { return c.errors }

// Warnings returns the accumulated advisory diagnostics.
func (c *Checker) Warnings() []diag.Diagnostic { return c.warnings }

func (c *Checker) registerFunction(fn *ast.Function) {
	params := make([]ast.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Type
	}

	sig := &FunctionSignature{
		Name:       fn.Name,
		Params:     params,
		ReturnType: fn.ReturnType,
		DefinedAt:  fn.NameSpan,
	}

	// Duplicates are reported but registration of the rest continues;
	// the first definition wins.
	if existing, ok := c.table.RegisterFunction(sig); !ok {
		c.errorAt(diag.CodeSemDuplicateDefinition, fn.NameSpan,
			fmt.Sprintf("function '%s' is already defined", fn.Name)).
			secondary(existing.DefinedAt, "originally defined here").
			emit(c)
	}
}

func (c *Checker) checkFunction(fn *ast.Function) {
	c.currentFunction = fn.Name
	c.currentReturn = fn.ReturnType
	c.loopDepth = 0

	c.table.EnterScope()

	for _, p := range fn.Params {
		sym := &Symbol{
			Name:      p.Name,
			Kind:      KindParameter,
			Type:      p.Type,
			DefinedAt: p.Span(),
		}
		if existing, ok := c.table.Insert(sym); !ok {
			c.errorAt(diag.CodeSemDuplicateDefinition, p.Span(),
				fmt.Sprintf("duplicate parameter name '%s'", p.Name)).
				secondary(existing.DefinedAt, "originally defined here").
				emit(c)
		}
	}

	c.checkStmts(fn.Body.Stmts)

	if fn.ReturnType != nil && !blockReturns(fn.Body) {
		c.errorAt(diag.CodeSemMissingReturn, fn.NameSpan,
			fmt.Sprintf("function '%s' declares return type %s but not all paths return a value",
				fn.Name, fn.ReturnType)).
			withHelp("add a 'send' statement to every control-flow path").
			emit(c)
	}

	c.reportUnused(c.table.ExitScope())
}

// reportUnused warns about never-read symbols from a popped scope.
// Parameters, constants, and underscore-prefixed names are exempt.
func (c *Checker) reportUnused(symbols []*Symbol) {
	for _, sym := range symbols {
		if sym.Used || sym.Kind != KindVariable || strings.HasPrefix(sym.Name, "_") {
			continue
		}
		c.warnAt(diag.CodeWarnUnusedVariable, sym.DefinedAt,
			fmt.Sprintf("variable '%s' is never used", sym.Name)).
			withHelp(fmt.Sprintf("remove it, or rename it to '_%s' to keep it intentionally", sym.Name)).
			emit(c)
	}
}

// blockReturns reports whether every control-flow path through the block
// executes a return. An if counts only when both branches exist and both
// independently return.
func blockReturns(block *ast.Block) bool {
	for _, stmt := range block.Stmts {
		if stmtReturns(stmt) {
			return true
		}
	}
	return false
}

func stmtReturns(stmt ast.Stmt) bool {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.IfStmt:
		return s.Else != nil && blockReturns(s.Then) && blockReturns(s.Else)
	case *ast.Block:
		return blockReturns(s)
	default:
		return false
	}
}
