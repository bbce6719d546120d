package semantic

import (
	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/errors"
)

// noRefReturnPass rejects any function declared to return a reference
// type.
type noRefReturnPass struct{}

func (noRefReturnPass) Name() string { return "no-reference-returns" }

func (noRefReturnPass) Run(prog *ast.Program, ctx *Context) *errors.CompilerError {
	for _, fn := range prog.Functions {
		if fn.ReturnType.IsRef() {
			return errors.NewCompilerError(errors.KindReferenceReturn, fn.Pos(),
				"function \""+fn.Name+"\" may not return a reference type", ctx.Source, ctx.File)
		}
	}
	return nil
}
