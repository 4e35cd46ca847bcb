// Package metrics computes static source metrics over a parsed program. It
// reads the AST without mutating it and is independent of analysis results.
package metrics

import (
	"strings"

	"github.com/minilang-lang/minilang/internal/ast"
	"github.com/minilang-lang/minilang/internal/lexer"
)

// FunctionMetrics holds per-function figures.
type FunctionMetrics struct {
	Name       string
	Parameters int
	Statements int
	Cyclomatic int
}

// Report holds program-wide figures plus a per-function breakdown in
// source order.
type Report struct {
	Functions    []FunctionMetrics
	Statements   int
	CodeLines    int
	CommentLines int
	BlankLines   int
}

// TotalLines returns the number of source lines covered by the report.
func (r *Report) TotalLines() int {
	return r.CodeLines + r.CommentLines + r.BlankLines
}

// Analyze computes metrics for a program and its raw source text.
func Analyze(program *ast.Program, source string) *Report {
	report := &Report{}

	for _, fn := range program.Functions {
		fm := FunctionMetrics{
			Name:       fn.Name,
			Parameters: len(fn.Params),
			Statements: countStatements(fn.Body),
			Cyclomatic: cyclomatic(fn),
		}
		report.Functions = append(report.Functions, fm)
		report.Statements += fm.Statements
	}

	report.CodeLines, report.CommentLines, report.BlankLines = countLines(source)
	return report
}

// countStatements counts executable statements in a block. Nested blocks
// contribute their contents, not themselves.
func countStatements(body *ast.Block) int {
	count := 0
	ast.Walk(body, func(n ast.Node) bool {
		switch n.(type) {
		case ast.Stmt:
			if _, isBlock := n.(*ast.Block); !isBlock {
				count++
			}
		}
		return true
	})
	return count
}

// cyclomatic computes McCabe complexity: one plus the number of decision
// points (branches, loops, and short-circuit operators).
func cyclomatic(fn *ast.Function) int {
	complexity := 1
	ast.Walk(fn.Body, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.IfStmt, *ast.WhileStmt, *ast.DoWhileStmt, *ast.ForStmt:
			complexity++
		case *ast.BinaryExpr:
			if x.Op == lexer.AND || x.Op == lexer.OR {
				complexity++
			}
		}
		return true
	})
	return complexity
}

// countLines classifies each source line as code, comment, or blank.
// A line inside a ## ... ## block comment counts as comment.
func countLines(source string) (code, comment, blank int) {
	inBlock := false
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case inBlock:
			comment++
			if strings.Contains(trimmed, "##") {
				inBlock = false
			}
		case trimmed == "":
			blank++
		case strings.HasPrefix(trimmed, "##"):
			comment++
			// A one-line block comment closes on the same line.
			if !strings.Contains(trimmed[2:], "##") {
				inBlock = true
			}
		case strings.HasPrefix(trimmed, "#"):
			comment++
		default:
			code++
		}
	}
	return code, comment, blank
}
