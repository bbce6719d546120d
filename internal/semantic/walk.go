package semantic

import "github.com/ekcc-lang/ekcc/internal/ast"

// walkStmt visits s and recurses into the statements it structurally
// owns (block bodies, if/else arms, while bodies). Passes that only need
// to inspect every statement once, without managing scope, use this;
// the type-annotation pass manages scope itself and does not.
func walkStmt(s ast.Statement, visit func(ast.Statement)) {
	visit(s)
	switch n := s.(type) {
	case *ast.BlockStmt:
		for _, inner := range n.Statements {
			walkStmt(inner, visit)
		}
	case *ast.IfStmt:
		walkStmt(n.Then, visit)
		if n.Else != nil {
			walkStmt(n.Else, visit)
		}
	case *ast.WhileStmt:
		walkStmt(n.Body, visit)
	}
}

// walkFunctionBody visits every statement in fn's body, if any.
func walkFunctionBody(fn *ast.FunctionDecl, visit func(ast.Statement)) {
	if fn.Body == nil {
		return
	}
	walkStmt(fn.Body, visit)
}

// walkExpr visits e and every sub-expression it contains.
func walkExpr(e ast.Expression, visit func(ast.Expression)) {
	if e == nil {
		return
	}
	visit(e)
	switch n := e.(type) {
	case *ast.CallExpr:
		for _, arg := range n.Arguments {
			walkExpr(arg, visit)
		}
	case *ast.BinaryExpr:
		walkExpr(n.Left, visit)
		walkExpr(n.Right, visit)
	case *ast.UnaryExpr:
		walkExpr(n.Operand, visit)
	case *ast.AssignExpr:
		walkExpr(n.Value, visit)
	case *ast.CastExpr:
		walkExpr(n.Value, visit)
	}
}

// walkExpressionsIn visits the expression(s) a single statement directly
// holds (and, transitively, everything nested inside them). It does not
// recurse into child statements — pair it with walkStmt/walkFunctionBody
// for that.
func walkExpressionsIn(s ast.Statement, visit func(ast.Expression)) {
	switch n := s.(type) {
	case *ast.ReturnStmt:
		walkExpr(n.Value, visit)
	case *ast.ExprStmt:
		walkExpr(n.Expression, visit)
	case *ast.IfStmt:
		walkExpr(n.Condition, visit)
	case *ast.WhileStmt:
		walkExpr(n.Condition, visit)
	case *ast.PrintValueStmt:
		walkExpr(n.Value, visit)
	case *ast.VarDeclStmt:
		walkExpr(n.Value, visit)
	}
}
