package semantic

import (
	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/errors"
)

// refInitPass requires that any reference-typed local's initializer is a
// bare variable reference — never a literal, never a computed value.
type refInitPass struct{}

func (refInitPass) Name() string { return "reference-initializer-shape" }

func (refInitPass) Run(prog *ast.Program, ctx *Context) *errors.CompilerError {
	for _, fn := range prog.Functions {
		var found *errors.CompilerError
		walkFunctionBody(fn, func(s ast.Statement) {
			if found != nil {
				return
			}
			decl, ok := s.(*ast.VarDeclStmt)
			if !ok || !decl.Decl.Type.IsRef() {
				return
			}
			if _, ok := decl.Value.(*ast.VarRef); !ok {
				found = errors.NewCompilerError(errors.KindBadReferenceInit, decl.Pos(),
					"the initializer of reference variable \""+decl.Decl.Name+"\" must be a bare variable reference",
					ctx.Source, ctx.File)
			}
		})
		if found != nil {
			return found
		}
	}
	return nil
}
