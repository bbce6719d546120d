package semantic

import (
	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/errors"
	"github.com/ekcc-lang/ekcc/internal/types"
)

// typeAnnotationPass is the final pass: it walks every function body with a
// mutable variable-to-type map seeded from the function's parameters (ref
// modifiers stripped, since a reference parameter's expression type is its
// pointee, not a pointer), decorating every expression with its resolved
// type and rejecting binops whose operands disagree.
//
// Entering a block, or the then/else arm of an if, pushes a fresh scope so
// declarations made inside never leak out; a while/if condition is typed
// in the scope the statement itself lives in.
type typeAnnotationPass struct{}

func (typeAnnotationPass) Name() string { return "type-annotation" }

func (p typeAnnotationPass) Run(prog *ast.Program, ctx *Context) *errors.CompilerError {
	for _, fn := range prog.Functions {
		ctx.ResetScope()
		for _, param := range fn.Params {
			ctx.Define(param.Name, stripRef(param.Type))
		}
		if fn.Body == nil {
			continue
		}
		if err := p.annotateBlock(fn.Body, ctx); err != nil {
			return err
		}
	}
	return nil
}

// stripRef returns the pointee type of a reference parameter, or t itself
// if it is not a reference; this is the type a reference parameter's name
// resolves to inside expressions, never the pointer type.
func stripRef(t types.Type) types.Type {
	if !t.Ref {
		return t
	}
	return types.Scalar(t.Kind)
}

func (p typeAnnotationPass) annotateBlock(b *ast.BlockStmt, ctx *Context) *errors.CompilerError {
	ctx.PushScope()
	defer ctx.PopScope()
	for _, stmt := range b.Statements {
		if err := p.annotateStmt(stmt, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (p typeAnnotationPass) annotateStmt(s ast.Statement, ctx *Context) *errors.CompilerError {
	switch n := s.(type) {
	case *ast.BlockStmt:
		return p.annotateBlock(n, ctx)
	case *ast.ReturnStmt:
		if n.Value == nil {
			return nil
		}
		_, err := p.annotateExpr(n.Value, ctx)
		return err
	case *ast.ExprStmt:
		_, err := p.annotateExpr(n.Expression, ctx)
		return err
	case *ast.IfStmt:
		if _, err := p.annotateExpr(n.Condition, ctx); err != nil {
			return err
		}
		ctx.PushScope()
		err := p.annotateStmt(n.Then, ctx)
		ctx.PopScope()
		if err != nil {
			return err
		}
		if n.Else != nil {
			ctx.PushScope()
			err := p.annotateStmt(n.Else, ctx)
			ctx.PopScope()
			if err != nil {
				return err
			}
		}
		return nil
	case *ast.WhileStmt:
		if _, err := p.annotateExpr(n.Condition, ctx); err != nil {
			return err
		}
		ctx.PushScope()
		err := p.annotateStmt(n.Body, ctx)
		ctx.PopScope()
		return err
	case *ast.PrintValueStmt:
		_, err := p.annotateExpr(n.Value, ctx)
		return err
	case *ast.PrintStringStmt:
		return nil
	case *ast.VarDeclStmt:
		valType, err := p.annotateExpr(n.Value, ctx)
		if err != nil {
			return err
		}
		declType := n.Decl.Type
		if declType.Ref {
			// Pass 5 already guaranteed the initializer is a bare var-ref;
			// the variable binds to the referent's own type, not a pointer.
			ctx.Define(n.Decl.Name, stripRef(declType))
			_ = valType
			return nil
		}
		ctx.Define(n.Decl.Name, declType)
		return nil
	default:
		return nil
	}
}

func (p typeAnnotationPass) annotateExpr(e ast.Expression, ctx *Context) (types.Type, *errors.CompilerError) {
	switch n := e.(type) {
	case *ast.Literal:
		t := types.Scalar(n.Kind)
		n.SetResolvedType(t)
		return t, nil

	case *ast.VarRef:
		t, ok := ctx.Lookup(n.Name)
		if !ok {
			return types.Type{}, errors.NewCompilerError(errors.KindUndefinedVariable, n.Pos(),
				"undefined variable \""+n.Name+"\"", ctx.Source, ctx.File)
		}
		n.SetResolvedType(t)
		return t, nil

	case *ast.CallExpr:
		sig := ctx.Functions[n.Callee]
		for _, arg := range n.Arguments {
			if _, err := p.annotateExpr(arg, ctx); err != nil {
				return types.Type{}, err
			}
		}
		t := sig.ReturnType
		n.SetResolvedType(t)
		return t, nil

	case *ast.UnaryExpr:
		operand, err := p.annotateExpr(n.Operand, ctx)
		if err != nil {
			return types.Type{}, err
		}
		n.SetResolvedType(operand)
		return operand, nil

	case *ast.BinaryExpr:
		left, err := p.annotateExpr(n.Left, ctx)
		if err != nil {
			return types.Type{}, err
		}
		right, err := p.annotateExpr(n.Right, ctx)
		if err != nil {
			return types.Type{}, err
		}
		if !left.BinopCompatible(right) {
			return types.Type{}, errors.NewCompilerError(errors.KindTypeMismatch, n.Pos(),
				"operand types \""+left.String()+"\" and \""+right.String()+"\" of \""+n.Op.String()+"\" don't match",
				ctx.Source, ctx.File)
		}
		var result types.Type
		switch n.Op {
		case ast.OpEq, ast.OpLt, ast.OpGt, ast.OpAnd, ast.OpOr:
			result = types.Scalar(types.Bool)
		default:
			result = types.Scalar(types.ResultKind(left, right))
		}
		n.SetResolvedType(result)
		return result, nil

	case *ast.AssignExpr:
		rhs, err := p.annotateExpr(n.Value, ctx)
		if err != nil {
			return types.Type{}, err
		}
		ctx.Define(n.Name, rhs)
		n.SetResolvedType(rhs)
		return rhs, nil

	case *ast.CastExpr:
		if _, err := p.annotateExpr(n.Value, ctx); err != nil {
			return types.Type{}, err
		}
		n.SetResolvedType(n.Target)
		return n.Target, nil

	default:
		return types.Type{}, nil
	}
}
