package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, f := range n.Functions {
			Walk(f, fn)
		}

	case *Function:
		for _, p := range n.Params {
			Walk(p, fn)
		}
		Walk(n.Body, fn)

	case *Block:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}

	case *LetStmt:
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *ConstStmt:
		Walk(n.Value, fn)

	case *DisplayStmt:
		for _, e := range n.Exprs {
			Walk(e, fn)
		}

	case *IfStmt:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		if n.Else != nil {
			Walk(n.Else, fn)
		}

	case *WhileStmt:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)

	case *DoWhileStmt:
		Walk(n.Body, fn)
		Walk(n.Cond, fn)

	case *ForStmt:
		if n.Init != nil {
			Walk(n.Init, fn)
		}
		if n.Cond != nil {
			Walk(n.Cond, fn)
		}
		if n.Update != nil {
			Walk(n.Update, fn)
		}
		Walk(n.Body, fn)

	case *ReturnStmt:
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *ExprStmt:
		Walk(n.X, fn)

	case *InterpLit:
		for _, part := range n.Parts {
			if p, ok := part.(ExprPart); ok {
				Walk(p.X, fn)
			}
		}

	case *ArrayLit:
		for _, e := range n.Elems {
			Walk(e, fn)
		}

	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *UnaryExpr:
		Walk(n.X, fn)

	case *CallExpr:
		for _, a := range n.Args {
			Walk(a, fn)
		}

	case *IndexExpr:
		Walk(n.Base, fn)
		Walk(n.Index, fn)

	case *AssignExpr:
		if t, ok := n.Target.(*IndexTarget); ok {
			Walk(t.Index, fn)
		}
		Walk(n.Value, fn)
	}
}
