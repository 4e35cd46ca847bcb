package sem_test

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/minilang-lang/minilang/internal/ast"
	"github.com/minilang-lang/minilang/internal/sem"
)

func TestFindSimilarNames(t *testing.T) {
	table := sem.NewSymbolTable()
	table.Insert(&sem.Symbol{Name: "counter", Kind: sem.KindVariable, Type: ast.TypeInt})
	table.Insert(&sem.Symbol{Name: "count", Kind: sem.KindVariable, Type: ast.TypeInt})
	table.Insert(&sem.Symbol{Name: "unrelated", Kind: sem.KindVariable, Type: ast.TypeInt})

	similar := table.FindSimilarNames("coutn", 3)
	be.Equal(t, similar, []string{"count"})

	// Nothing within distance 2.
	be.Equal(t, len(table.FindSimilarNames("zzzzzz", 3)), 0)
}

func TestFindSimilarNamesSortedByDistance(t *testing.T) {
	table := sem.NewSymbolTable()
	table.Insert(&sem.Symbol{Name: "sum", Kind: sem.KindVariable, Type: ast.TypeInt})
	table.Insert(&sem.Symbol{Name: "sums", Kind: sem.KindVariable, Type: ast.TypeInt})

	// "sums" is 1 edit away, "sum" is 2; nearest first.
	similar := table.FindSimilarNames("sumss", 3)
	be.Equal(t, similar, []string{"sums", "sum"})
}

func TestFindSimilarSeesOuterScopes(t *testing.T) {
	table := sem.NewSymbolTable()
	table.Insert(&sem.Symbol{Name: "total", Kind: sem.KindVariable, Type: ast.TypeInt})
	table.EnterScope()

	similar := table.FindSimilarNames("totl", 3)
	be.Equal(t, similar, []string{"total"})
}

func TestFindSimilarFunctions(t *testing.T) {
	table := sem.NewSymbolTable()
	table.RegisterFunction(&sem.FunctionSignature{Name: "compute"})
	table.RegisterFunction(&sem.FunctionSignature{Name: "combine"})

	similar := table.FindSimilarFunctions("comput", 3)
	be.Equal(t, similar, []string{"compute"})
}
