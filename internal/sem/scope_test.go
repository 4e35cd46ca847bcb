package sem_test

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/minilang-lang/minilang/internal/ast"
	"github.com/minilang-lang/minilang/internal/sem"
)

func TestInsertAndLookup(t *testing.T) {
	table := sem.NewSymbolTable()

	_, ok := table.Insert(&sem.Symbol{Name: "x", Kind: sem.KindVariable, Type: ast.TypeInt})
	be.True(t, ok)

	sym := table.Lookup("x")
	be.True(t, sym != nil)
	be.Equal(t, sym.Name, "x")
}

func TestDuplicateInSameFrame(t *testing.T) {
	table := sem.NewSymbolTable()

	first := &sem.Symbol{Name: "x", Kind: sem.KindVariable, Type: ast.TypeInt}
	_, ok := table.Insert(first)
	be.True(t, ok)

	existing, ok := table.Insert(&sem.Symbol{Name: "x", Kind: sem.KindVariable, Type: ast.TypeBool})
	be.True(t, !ok)
	be.Equal(t, existing, first)

	// The original binding survives.
	be.Equal(t, table.Lookup("x").Type, ast.Type(ast.TypeInt))
}

func TestShadowingAcrossFrames(t *testing.T) {
	table := sem.NewSymbolTable()

	_, ok := table.Insert(&sem.Symbol{Name: "x", Kind: sem.KindVariable, Type: ast.TypeInt})
	be.True(t, ok)

	table.EnterScope()
	_, ok = table.Insert(&sem.Symbol{Name: "x", Kind: sem.KindVariable, Type: ast.TypeBool})
	be.True(t, ok)

	be.Equal(t, table.Lookup("x").Type, ast.Type(ast.TypeBool))
	be.True(t, table.LookupOuter("x") != nil)

	table.ExitScope()
	be.Equal(t, table.Lookup("x").Type, ast.Type(ast.TypeInt))
}

func TestExitScopeReturnsSymbolsInOrder(t *testing.T) {
	table := sem.NewSymbolTable()
	table.EnterScope()

	table.Insert(&sem.Symbol{Name: "b", Kind: sem.KindVariable, Type: ast.TypeInt})
	table.Insert(&sem.Symbol{Name: "a", Kind: sem.KindVariable, Type: ast.TypeInt})

	symbols := table.ExitScope()
	be.Equal(t, len(symbols), 2)
	be.Equal(t, symbols[0].Name, "b")
	be.Equal(t, symbols[1].Name, "a")
}

func TestBaseFramePopGuard(t *testing.T) {
	table := sem.NewSymbolTable()
	table.Insert(&sem.Symbol{Name: "x", Kind: sem.KindVariable, Type: ast.TypeInt})

	// Popping the base frame is a no-op.
	be.Equal(t, len(table.ExitScope()), 0)
	be.True(t, table.Lookup("x") != nil)
}

func TestFunctionRegistry(t *testing.T) {
	table := sem.NewSymbolTable()

	first := &sem.FunctionSignature{Name: "f", ReturnType: ast.TypeInt}
	_, ok := table.RegisterFunction(first)
	be.True(t, ok)

	existing, ok := table.RegisterFunction(&sem.FunctionSignature{Name: "f"})
	be.True(t, !ok)
	be.Equal(t, existing, first)

	// First registration wins.
	be.Equal(t, table.LookupFunction("f").ReturnType, ast.Type(ast.TypeInt))
}
