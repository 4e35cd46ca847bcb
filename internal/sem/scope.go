package sem

import (
	"github.com/minilang-lang/minilang/internal/ast"
	"github.com/minilang-lang/minilang/internal/lexer"
)

// SymbolKind distinguishes the declaration forms a name can come from.
type SymbolKind int

const (
	KindVariable SymbolKind = iota
	KindConstant
	KindParameter
)

func (k SymbolKind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindParameter:
		return "parameter"
	default:
		return "variable"
	}
}

// Symbol represents a named entity declared in the source code.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Type       ast.Type
	ScopeLevel int
	DefinedAt  lexer.Span
	Used       bool
}

// FunctionSignature is the callable surface of a function, registered
// before any body is checked so forward and mutual references resolve.
type FunctionSignature struct {
	Name       string
	Params     []ast.Type
	ReturnType ast.Type // nil for void functions
	DefinedAt  lexer.Span
}

// scopeFrame keeps both a map for lookup and the insertion order so
// diagnostics over a frame's symbols come out deterministically.
type scopeFrame struct {
	names   []string
	symbols map[string]*Symbol
}

func newScopeFrame() *scopeFrame {
	return &scopeFrame{symbols: make(map[string]*Symbol)}
}

// SymbolTable is a stack of lexical scope frames plus a flat function
// registry. It is owned by a single analysis run and never shared.
type SymbolTable struct {
	frames    []*scopeFrame
	functions map[string]*FunctionSignature
	funcNames []string
}

// NewSymbolTable creates a table with the base scope frame in place.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		frames:    []*scopeFrame{newScopeFrame()},
		functions: make(map[string]*FunctionSignature),
	}
}

// EnterScope pushes a fresh frame.
func (t *SymbolTable) EnterScope() {
	t.frames = append(t.frames, newScopeFrame())
}

// ExitScope pops the innermost frame and returns its symbols in
// declaration order. The base frame is never popped.
func (t *SymbolTable) ExitScope() []*Symbol {
	if len(t.frames) <= 1 {
		return nil
	}
	top := t.frames[len(t.frames)-1]
	t.frames = t.frames[:len(t.frames)-1]

	symbols := make([]*Symbol, 0, len(top.names))
	for _, name := range top.names {
		symbols = append(symbols, top.symbols[name])
	}
	return symbols
}

// Insert adds a symbol to the innermost frame. If the frame already binds
// the name, the existing symbol is returned and the table is unchanged.
func (t *SymbolTable) Insert(sym *Symbol) (existing *Symbol, ok bool) {
	top := t.frames[len(t.frames)-1]
	if prev, found := top.symbols[sym.Name]; found {
		return prev, false
	}
	sym.ScopeLevel = len(t.frames) - 1
	top.symbols[sym.Name] = sym
	top.names = append(top.names, sym.Name)
	return nil, true
}

// Lookup searches frames from innermost to outermost, so an inner binding
// shadows an outer one.
func (t *SymbolTable) Lookup(name string) *Symbol {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if sym, ok := t.frames[i].symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupOuter searches every frame except the innermost. Used to detect
// shadowing when a new binding is introduced.
func (t *SymbolTable) LookupOuter(name string) *Symbol {
	for i := len(t.frames) - 2; i >= 0; i-- {
		if sym, ok := t.frames[i].symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// RegisterFunction adds a signature to the flat registry. On a duplicate
// name the first registration wins and is returned.
func (t *SymbolTable) RegisterFunction(sig *FunctionSignature) (existing *FunctionSignature, ok bool) {
	if prev, found := t.functions[sig.Name]; found {
		return prev, false
	}
	t.functions[sig.Name] = sig
	t.funcNames = append(t.funcNames, sig.Name)
	return nil, true
}

// LookupFunction resolves a name against the function registry.
func (t *SymbolTable) LookupFunction(name string) *FunctionSignature {
	return t.functions[name]
}

// visibleNames returns every variable name reachable from the innermost
// scope, outermost first.
func (t *SymbolTable) visibleNames() []string {
	var names []string
	for _, frame := range t.frames {
		names = append(names, frame.names...)
	}
	return names
}
