package semantic

import (
	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/errors"
	"github.com/ekcc-lang/ekcc/internal/lexer"
)

// refWellFormedPass rejects any type that wraps void in a reference or
// nests "ref" more than once. The parser accepts both syntactically
// (UncheckedReference); this pass is where they actually get rejected.
type refWellFormedPass struct{}

func (refWellFormedPass) Name() string { return "reference-well-formedness" }

func (refWellFormedPass) Run(prog *ast.Program, ctx *Context) *errors.CompilerError {
	for _, ext := range prog.Externs {
		if !ext.ReturnType.IsWellFormed() {
			return badRefType(ctx, ext.Pos())
		}
		for _, t := range ext.ParamTypes {
			if !t.IsWellFormed() {
				return badRefType(ctx, ext.Pos())
			}
		}
	}

	for _, fn := range prog.Functions {
		if !fn.ReturnType.IsWellFormed() {
			return badRefType(ctx, fn.Pos())
		}
		for _, param := range fn.Params {
			if !param.Type.IsWellFormed() {
				return badRefType(ctx, param.Pos())
			}
		}

		var found *errors.CompilerError
		walkFunctionBody(fn, func(s ast.Statement) {
			if found != nil {
				return
			}
			if decl, ok := s.(*ast.VarDeclStmt); ok && !decl.Decl.Type.IsWellFormed() {
				found = badRefType(ctx, decl.Pos())
			}
		})
		if found != nil {
			return found
		}
	}
	return nil
}

func badRefType(ctx *Context, pos lexer.Position) *errors.CompilerError {
	return errors.NewCompilerError(errors.KindBadReferenceType, pos,
		"a reference type may not wrap void and may not be nested", ctx.Source, ctx.File)
}
