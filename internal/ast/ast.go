package ast

import "github.com/minilang-lang/minilang/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program represents a parsed compilation unit: an ordered sequence of
// function definitions.
type Program struct {
	Functions []*Function
	span      lexer.Span
}

// Span returns the span covering the entire program.
func (p *Program) Span() lexer.Span { return p.span }

// SetSpan updates the program span.
func (p *Program) SetSpan(span lexer.Span) { p.span = span }

// Function represents a function definition.
type Function struct {
	Name       string
	NameSpan   lexer.Span
	Params     []*Parameter
	ReturnType Type // nil for void functions
	Body       *Block
	span       lexer.Span
}

// Span returns the function span.
func (f *Function) Span() lexer.Span { return f.span }

// NewFunction constructs a function node.
func NewFunction(name string, nameSpan lexer.Span, params []*Parameter, ret Type, body *Block, span lexer.Span) *Function {
	return &Function{
		Name:       name,
		NameSpan:   nameSpan,
		Params:     params,
		ReturnType: ret,
		Body:       body,
		span:       span,
	}
}

// Parameter represents a function parameter.
type Parameter struct {
	Name string
	Type Type
	span lexer.Span
}

// Span returns the parameter span.
func (p *Parameter) Span() lexer.Span { return p.span }

// NewParameter constructs a parameter node.
func NewParameter(name string, typ Type, span lexer.Span) *Parameter {
	return &Parameter{Name: name, Type: typ, span: span}
}

// Block represents a braced sequence of statements. A bare block is itself
// a statement.
type Block struct {
	Stmts []Stmt
	span  lexer.Span
}

// Span returns the block span.
func (b *Block) Span() lexer.Span { return b.span }

// SetSpan updates the block span.
func (b *Block) SetSpan(span lexer.Span) { b.span = span }

func (*Block) stmtNode() {}

// LetStmt represents a variable declaration: let x: int = 42;
type LetStmt struct {
	Name  string
	Type  Type
	Value Expr // nil when declared without an initializer
	span  lexer.Span
}

// Span returns the statement span.
func (s *LetStmt) Span() lexer.Span { return s.span }

// NewLetStmt constructs a let statement node.
func NewLetStmt(name string, typ Type, value Expr, span lexer.Span) *LetStmt {
	return &LetStmt{Name: name, Type: typ, Value: value, span: span}
}

func (*LetStmt) stmtNode() {}

// ConstStmt represents a constant declaration: const PI: float = 3.14;
// Constants always carry an initializer; the parser enforces it.
type ConstStmt struct {
	Name  string
	Type  Type
	Value Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *ConstStmt) Span() lexer.Span { return s.span }

// NewConstStmt constructs a const statement node.
func NewConstStmt(name string, typ Type, value Expr, span lexer.Span) *ConstStmt {
	return &ConstStmt{Name: name, Type: typ, Value: value, span: span}
}

func (*ConstStmt) stmtNode() {}

// DisplayStmt represents an output statement: display "x is {x}", y;
type DisplayStmt struct {
	Exprs []Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *DisplayStmt) Span() lexer.Span { return s.span }

// NewDisplayStmt constructs a display statement node.
func NewDisplayStmt(exprs []Expr, span lexer.Span) *DisplayStmt {
	return &DisplayStmt{Exprs: exprs, span: span}
}

func (*DisplayStmt) stmtNode() {}

// IfStmt represents a conditional. An else-if chain is parsed as a nested
// IfStmt wrapped in a single-statement else block.
type IfStmt struct {
	Cond Expr
	Then *Block
	Else *Block // nil when there is no else branch
	span lexer.Span
}

// Span returns the statement span.
func (s *IfStmt) Span() lexer.Span { return s.span }

// NewIfStmt constructs a conditional node. elseBlock may be nil.
func NewIfStmt(cond Expr, then, elseBlock *Block, span lexer.Span) *IfStmt {
	return &IfStmt{Cond: cond, Then: then, Else: elseBlock, span: span}
}

func (*IfStmt) stmtNode() {}

// WhileStmt represents a while loop.
type WhileStmt struct {
	Cond Expr
	Body *Block
	span lexer.Span
}

// Span returns the statement span.
func (s *WhileStmt) Span() lexer.Span { return s.span }

// NewWhileStmt constructs a while loop node.
func NewWhileStmt(cond Expr, body *Block, span lexer.Span) *WhileStmt {
	return &WhileStmt{Cond: cond, Body: body, span: span}
}

func (*WhileStmt) stmtNode() {}

// DoWhileStmt represents a do-while loop: do { ... } while cond;
type DoWhileStmt struct {
	Body *Block
	Cond Expr
	span lexer.Span
}

// Span returns the statement span.
func (s *DoWhileStmt) Span() lexer.Span { return s.span }

// NewDoWhileStmt constructs a do-while loop node.
func NewDoWhileStmt(body *Block, cond Expr, span lexer.Span) *DoWhileStmt {
	return &DoWhileStmt{Body: body, Cond: cond, span: span}
}

func (*DoWhileStmt) stmtNode() {}

// ForStmt represents a C-style for loop. Each clause may be omitted.
type ForStmt struct {
	Init   Stmt // let, assignment, or expression statement; nil if omitted
	Cond   Expr // nil if omitted
	Update Expr // assignment or expression; nil if omitted
	Body   *Block
	span   lexer.Span
}

// Span returns the statement span.
func (s *ForStmt) Span() lexer.Span { return s.span }

// NewForStmt constructs a for loop node. Any clause may be nil.
func NewForStmt(init Stmt, cond, update Expr, body *Block, span lexer.Span) *ForStmt {
	return &ForStmt{Init: init, Cond: cond, Update: update, Body: body, span: span}
}

func (*ForStmt) stmtNode() {}

// ReturnStmt represents a return statement: send expr;
type ReturnStmt struct {
	Value Expr // nil for a bare send;
	span  lexer.Span
}

// Span returns the statement span.
func (s *ReturnStmt) Span() lexer.Span { return s.span }

// NewReturnStmt constructs a return statement node. value may be nil.
func NewReturnStmt(value Expr, span lexer.Span) *ReturnStmt {
	return &ReturnStmt{Value: value, span: span}
}

func (*ReturnStmt) stmtNode() {}

// BreakStmt represents a break statement.
type BreakStmt struct {
	span lexer.Span
}

// Span returns the statement span.
func (s *BreakStmt) Span() lexer.Span { return s.span }

// NewBreakStmt constructs a break statement node.
func NewBreakStmt(span lexer.Span) *BreakStmt { return &BreakStmt{span: span} }

func (*BreakStmt) stmtNode() {}

// ContinueStmt represents a continue statement.
type ContinueStmt struct {
	span lexer.Span
}

// Span returns the statement span.
func (s *ContinueStmt) Span() lexer.Span { return s.span }

// NewContinueStmt constructs a continue statement node.
func NewContinueStmt(span lexer.Span) *ContinueStmt { return &ContinueStmt{span: span} }

func (*ContinueStmt) stmtNode() {}

// ExprStmt represents a bare expression statement.
type ExprStmt struct {
	X    Expr
	span lexer.Span
}

// Span returns the statement span.
func (s *ExprStmt) Span() lexer.Span { return s.span }

// NewExprStmt constructs an expression statement node.
func NewExprStmt(x Expr, span lexer.Span) *ExprStmt {
	return &ExprStmt{X: x, span: span}
}

func (*ExprStmt) stmtNode() {}

// Ident represents an identifier expression.
type Ident struct {
	Name string
	span lexer.Span
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{Name: name, span: span}
}

func (*Ident) exprNode() {}

// IntLit represents an integer literal.
type IntLit struct {
	Value int32
	span  lexer.Span
}

// Span returns the literal span.
func (l *IntLit) Span() lexer.Span { return l.span }

func (*IntLit) exprNode() {}

// NewIntLit constructs an integer literal node.
func NewIntLit(value int32, span lexer.Span) *IntLit {
	return &IntLit{Value: value, span: span}
}

// FloatLit represents a float literal.
type FloatLit struct {
	Value float64
	span  lexer.Span
}

// Span returns the literal span.
func (l *FloatLit) Span() lexer.Span { return l.span }

func (*FloatLit) exprNode() {}

// NewFloatLit constructs a float literal node.
func NewFloatLit(value float64, span lexer.Span) *FloatLit {
	return &FloatLit{Value: value, span: span}
}

// BoolLit represents a boolean literal.
type BoolLit struct {
	Value bool
	span  lexer.Span
}

// Span returns the literal span.
func (l *BoolLit) Span() lexer.Span { return l.span }

func (*BoolLit) exprNode() {}

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{Value: value, span: span}
}

// StringLit represents a plain string literal with no interpolation.
type StringLit struct {
	Value string
	span  lexer.Span
}

// Span returns the literal span.
func (l *StringLit) Span() lexer.Span { return l.span }

func (*StringLit) exprNode() {}

// NewStringLit constructs a string literal node.
func NewStringLit(value string, span lexer.Span) *StringLit {
	return &StringLit{Value: value, span: span}
}

// InterpLit represents a string literal containing {expr} interpolation,
// split into an ordered sequence of text and expression parts.
type InterpLit struct {
	Parts []StringPart
	span  lexer.Span
}

// Span returns the literal span.
func (l *InterpLit) Span() lexer.Span { return l.span }

// NewInterpLit constructs an interpolated string node.
func NewInterpLit(parts []StringPart, span lexer.Span) *InterpLit {
	return &InterpLit{Parts: parts, span: span}
}

func (*InterpLit) exprNode() {}

// StringPart is one segment of an interpolated string.
type StringPart interface {
	stringPartNode()
}

// TextPart is a run of literal text inside an interpolated string.
type TextPart struct {
	Text string
}

func (TextPart) stringPartNode() {}

// ExprPart is an interpolated {expression} inside a string.
type ExprPart struct {
	X Expr
}

func (ExprPart) stringPartNode() {}

// ArrayLit represents an array literal: [1, 2, 3]
type ArrayLit struct {
	Elems []Expr
	span  lexer.Span
}

// Span returns the literal span.
func (l *ArrayLit) Span() lexer.Span { return l.span }

// NewArrayLit constructs an array literal node.
func NewArrayLit(elems []Expr, span lexer.Span) *ArrayLit {
	return &ArrayLit{Elems: elems, span: span}
}

func (*ArrayLit) exprNode() {}

// BinaryExpr represents a binary expression. Op is the operator token type.
type BinaryExpr struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *BinaryExpr) Span() lexer.Span { return e.span }

// NewBinaryExpr constructs a binary expression node.
func NewBinaryExpr(op lexer.TokenType, left, right Expr, span lexer.Span) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right, span: span}
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr represents a prefix expression: NOT x or -x.
type UnaryExpr struct {
	Op   lexer.TokenType
	X    Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *UnaryExpr) Span() lexer.Span { return e.span }

// NewUnaryExpr constructs a prefix expression node.
func NewUnaryExpr(op lexer.TokenType, x Expr, span lexer.Span) *UnaryExpr {
	return &UnaryExpr{Op: op, X: x, span: span}
}

func (*UnaryExpr) exprNode() {}

// CallExpr represents a function call. Callees are always plain names;
// MiniLang has no function values.
type CallExpr struct {
	Name     string
	NameSpan lexer.Span
	Args     []Expr
	span     lexer.Span
}

// Span returns the expression span.
func (e *CallExpr) Span() lexer.Span { return e.span }

// NewCallExpr constructs a call expression node.
func NewCallExpr(name string, nameSpan lexer.Span, args []Expr, span lexer.Span) *CallExpr {
	return &CallExpr{Name: name, NameSpan: nameSpan, Args: args, span: span}
}

func (*CallExpr) exprNode() {}

// IndexExpr represents array indexing: base[index].
type IndexExpr struct {
	Base  Expr
	Index Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *IndexExpr) Span() lexer.Span { return e.span }

// NewIndexExpr constructs an index expression node.
func NewIndexExpr(base, index Expr, span lexer.Span) *IndexExpr {
	return &IndexExpr{Base: base, Index: index, span: span}
}

func (*IndexExpr) exprNode() {}

// AssignExpr represents an assignment. The target is tagged so consumers
// can match on the assignment form directly.
type AssignExpr struct {
	Target AssignTarget
	Value  Expr
	span   lexer.Span
}

// Span returns the expression span.
func (e *AssignExpr) Span() lexer.Span { return e.span }

// NewAssignExpr constructs an assignment node.
func NewAssignExpr(target AssignTarget, value Expr, span lexer.Span) *AssignExpr {
	return &AssignExpr{Target: target, Value: value, span: span}
}

func (*AssignExpr) exprNode() {}

// AssignTarget is the left-hand side of an assignment.
type AssignTarget interface {
	Node
	assignTargetNode()
}

// SimpleTarget assigns to a named variable: x = v
type SimpleTarget struct {
	Name string
	span lexer.Span
}

// Span returns the target span.
func (t *SimpleTarget) Span() lexer.Span { return t.span }

// NewSimpleTarget constructs a simple assignment target.
func NewSimpleTarget(name string, span lexer.Span) *SimpleTarget {
	return &SimpleTarget{Name: name, span: span}
}

func (*SimpleTarget) assignTargetNode() {}

// IndexTarget assigns to one element of a named array: arr[i] = v
type IndexTarget struct {
	Name  string
	Index Expr
	span  lexer.Span
}

// Span returns the target span.
func (t *IndexTarget) Span() lexer.Span { return t.span }

// NewIndexTarget constructs an indexed assignment target.
func NewIndexTarget(name string, index Expr, span lexer.Span) *IndexTarget {
	return &IndexTarget{Name: name, Index: index, span: span}
}

func (*IndexTarget) assignTargetNode() {}
