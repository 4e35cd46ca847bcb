package parser_test

import (
	"testing"

	"github.com/minilang-lang/minilang/internal/ast"
	"github.com/minilang-lang/minilang/internal/lexer"
	"github.com/minilang-lang/minilang/internal/parser"
)

func parseProgram(t *testing.T, src string) (*ast.Program, *parser.Error) {
	t.Helper()

	tokens, lexErr := lexer.Tokenize(src, "test.ml")
	if lexErr != nil {
		t.Fatalf("unexpected lex error: %s", lexErr)
	}
	return parser.Parse(tokens, src)
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()

	program, err := parseProgram(t, src)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}
	return program
}

// mainBody parses a program with a single main function and returns its
// body statements.
func mainBody(t *testing.T, body string) []ast.Stmt {
	t.Helper()

	program := mustParse(t, "func main() {\n"+body+"\n}")
	if len(program.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(program.Functions))
	}
	return program.Functions[0].Body.Stmts
}

func expectError(t *testing.T, src string, kind parser.ErrorKind) *parser.Error {
	t.Helper()

	_, err := parseProgram(t, src)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if err.Kind != kind {
		t.Fatalf("expected error kind %v, got %v (%s)", kind, err.Kind, err)
	}
	return err
}

func TestParseFunctionSignature(t *testing.T) {
	const src = `
func add(a: int, b: int) -> int {
	send a + b;
}
`
	program := mustParse(t, src)

	fn := program.Functions[0]
	if fn.Name != "add" {
		t.Fatalf("expected function name %q, got %q", "add", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Params))
	}
	if !ast.TypesEqual(fn.Params[0].Type, ast.TypeInt) {
		t.Fatalf("expected int parameter, got %s", fn.Params[0].Type)
	}
	if !ast.TypesEqual(fn.ReturnType, ast.TypeInt) {
		t.Fatalf("expected int return type, got %s", fn.ReturnType)
	}
}

func TestParseVoidFunction(t *testing.T) {
	program := mustParse(t, `func main() { display 1; }`)

	if program.Functions[0].ReturnType != nil {
		t.Fatalf("expected nil return type, got %s", program.Functions[0].ReturnType)
	}
}

func TestParseArrayType(t *testing.T) {
	stmts := mainBody(t, `let a: int[3] = [1, 2, 3];`)

	let, ok := stmts[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected *ast.LetStmt, got %T", stmts[0])
	}
	arr, ok := let.Type.(*ast.Array)
	if !ok {
		t.Fatalf("expected array type, got %s", let.Type)
	}
	if arr.Size != 3 || !ast.TypesEqual(arr.Elem, ast.TypeInt) {
		t.Fatalf("expected int[3], got %s", arr)
	}
}

func TestAdditionIsLeftAssociative(t *testing.T) {
	stmts := mainBody(t, `display a + b + c;`)

	display := stmts[0].(*ast.DisplayStmt)
	outer, ok := display.Exprs[0].(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected binary expression, got %T", display.Exprs[0])
	}

	// (a+b)+c: the left child is itself a binary node, the right is c.
	left, ok := outer.Left.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected left-leaning tree, left child is %T", outer.Left)
	}
	if id := left.Left.(*ast.Ident); id.Name != "a" {
		t.Fatalf("expected innermost left operand a, got %s", id.Name)
	}
	if id := outer.Right.(*ast.Ident); id.Name != "c" {
		t.Fatalf("expected right operand c, got %s", id.Name)
	}
}

func TestPrecedence(t *testing.T) {
	stmts := mainBody(t, `display a + b * c == d AND e;`)

	// AND binds loosest: the top node must be AND.
	display := stmts[0].(*ast.DisplayStmt)
	top := display.Exprs[0].(*ast.BinaryExpr)
	if top.Op != lexer.AND {
		t.Fatalf("expected top operator AND, got %s", top.Op)
	}
	eq := top.Left.(*ast.BinaryExpr)
	if eq.Op != lexer.EQ {
		t.Fatalf("expected == under AND, got %s", eq.Op)
	}
	plus := eq.Left.(*ast.BinaryExpr)
	if plus.Op != lexer.PLUS {
		t.Fatalf("expected + under ==, got %s", plus.Op)
	}
	times := plus.Right.(*ast.BinaryExpr)
	if times.Op != lexer.ASTERISK {
		t.Fatalf("expected * under +, got %s", times.Op)
	}
}

func TestUnaryIsRightAssociative(t *testing.T) {
	stmts := mainBody(t, `display NOT NOT x;`)

	display := stmts[0].(*ast.DisplayStmt)
	outer := display.Exprs[0].(*ast.UnaryExpr)
	inner, ok := outer.X.(*ast.UnaryExpr)
	if !ok {
		t.Fatalf("expected nested unary, got %T", outer.X)
	}
	if _, ok := inner.X.(*ast.Ident); !ok {
		t.Fatalf("expected identifier operand, got %T", inner.X)
	}
}

func TestElseIfChainNests(t *testing.T) {
	stmts := mainBody(t, `
if a {
	display 1;
} else if b {
	display 2;
} else {
	display 3;
}
`)

	outer := stmts[0].(*ast.IfStmt)
	if outer.Else == nil || len(outer.Else.Stmts) != 1 {
		t.Fatalf("expected else block with exactly one statement")
	}

	nested, ok := outer.Else.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected nested IfStmt in else block, got %T", outer.Else.Stmts[0])
	}
	if nested.Else == nil {
		t.Fatalf("expected nested if to carry the final else branch")
	}
}

func TestAssignmentStatement(t *testing.T) {
	stmts := mainBody(t, `x = 1;`)

	expr := stmts[0].(*ast.ExprStmt)
	assign := expr.X.(*ast.AssignExpr)
	target, ok := assign.Target.(*ast.SimpleTarget)
	if !ok {
		t.Fatalf("expected simple target, got %T", assign.Target)
	}
	if target.Name != "x" {
		t.Fatalf("expected target x, got %s", target.Name)
	}
}

func TestIndexAssignmentStatement(t *testing.T) {
	stmts := mainBody(t, `arr[i + 1] = 42;`)

	expr := stmts[0].(*ast.ExprStmt)
	assign := expr.X.(*ast.AssignExpr)
	target, ok := assign.Target.(*ast.IndexTarget)
	if !ok {
		t.Fatalf("expected index target, got %T", assign.Target)
	}
	if target.Name != "arr" {
		t.Fatalf("expected target arr, got %s", target.Name)
	}
	if _, ok := target.Index.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected binary index expression, got %T", target.Index)
	}
}

func TestBareCallIsExpressionStatement(t *testing.T) {
	stmts := mainBody(t, `helper(1, 2);`)

	expr := stmts[0].(*ast.ExprStmt)
	call, ok := expr.X.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected call expression, got %T", expr.X)
	}
	if call.Name != "helper" || len(call.Args) != 2 {
		t.Fatalf("expected helper with 2 args, got %s with %d", call.Name, len(call.Args))
	}
}

func TestComparisonIsNotAssignment(t *testing.T) {
	// A leading identifier followed by == must disambiguate to an
	// expression statement, restoring the checkpoint.
	stmts := mainBody(t, `x == 1;`)

	expr := stmts[0].(*ast.ExprStmt)
	bin, ok := expr.X.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected binary expression, got %T", expr.X)
	}
	if bin.Op != lexer.EQ {
		t.Fatalf("expected ==, got %s", bin.Op)
	}
}

func TestForLoopFullClauses(t *testing.T) {
	stmts := mainBody(t, `
for let i: int = 0; i < 10; i = i + 1 {
	display i;
}
`)

	loop := stmts[0].(*ast.ForStmt)
	if _, ok := loop.Init.(*ast.LetStmt); !ok {
		t.Fatalf("expected let init, got %T", loop.Init)
	}
	if _, ok := loop.Cond.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected binary condition, got %T", loop.Cond)
	}
	if _, ok := loop.Update.(*ast.AssignExpr); !ok {
		t.Fatalf("expected assignment update, got %T", loop.Update)
	}
}

func TestForLoopOmittedClauses(t *testing.T) {
	stmts := mainBody(t, `
for ;; {
	break;
}
`)

	loop := stmts[0].(*ast.ForStmt)
	if loop.Init != nil || loop.Cond != nil || loop.Update != nil {
		t.Fatalf("expected all clauses omitted")
	}
}

func TestDoWhile(t *testing.T) {
	stmts := mainBody(t, `
do {
	display 1;
} while x < 3;
`)

	loop, ok := stmts[0].(*ast.DoWhileStmt)
	if !ok {
		t.Fatalf("expected do-while, got %T", stmts[0])
	}
	if _, ok := loop.Cond.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected binary condition, got %T", loop.Cond)
	}
}

func TestChainedIndexing(t *testing.T) {
	stmts := mainBody(t, `display m[i][j];`)

	display := stmts[0].(*ast.DisplayStmt)
	outer := display.Exprs[0].(*ast.IndexExpr)
	if _, ok := outer.Base.(*ast.IndexExpr); !ok {
		t.Fatalf("expected chained index base, got %T", outer.Base)
	}
}

func TestMissingSemicolon(t *testing.T) {
	expectError(t, `func main() { display 1 }`, parser.ErrMissingSemicolon)
}

func TestUnclosedBlockAtEOF(t *testing.T) {
	expectError(t, `func main() { display 1;`, parser.ErrUnexpectedEOF)
}

func TestMissingType(t *testing.T) {
	expectError(t, `func main() { let x: = 1; }`, parser.ErrMissingType)
}

func TestInvalidExpression(t *testing.T) {
	expectError(t, `func main() { display ; }`, parser.ErrInvalidExpression)
}

func TestUnexpectedToken(t *testing.T) {
	err := expectError(t, `func main(] {}`, parser.ErrUnexpectedToken)
	if err.Expected == "" || err.Found == "" {
		t.Fatalf("expected/found strings must be populated, got %q/%q", err.Expected, err.Found)
	}
}

func TestUnexpectedEOFHasSpan(t *testing.T) {
	err := expectError(t, `func main() {`, parser.ErrUnexpectedEOF)
	if err.Span.Line == 0 {
		t.Fatalf("expected a backfilled span, got %+v", err.Span)
	}
}
