package semantic

import (
	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/errors"
)

// declTypesPass rejects void parameter and local-variable declarations.
type declTypesPass struct{}

func (declTypesPass) Name() string { return "declaration-types" }

func (declTypesPass) Run(prog *ast.Program, ctx *Context) *errors.CompilerError {
	for _, fn := range prog.Functions {
		for _, param := range fn.Params {
			if param.Type.IsVoid() {
				return badDeclType(ctx, param)
			}
		}

		var found *errors.CompilerError
		walkFunctionBody(fn, func(s ast.Statement) {
			if found != nil {
				return
			}
			if decl, ok := s.(*ast.VarDeclStmt); ok && decl.Decl.Type.IsVoid() {
				found = badDeclType(ctx, decl.Decl)
			}
		})
		if found != nil {
			return found
		}
	}
	return nil
}

func badDeclType(ctx *Context, decl *ast.ParamDecl) *errors.CompilerError {
	return errors.NewCompilerError(errors.KindBadDeclarationType, decl.Pos(),
		"variable \""+decl.Name+"\" cannot be declared void", ctx.Source, ctx.File)
}
