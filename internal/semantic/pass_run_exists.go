package semantic

import (
	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/errors"
	"github.com/ekcc-lang/ekcc/internal/lexer"
	"github.com/ekcc-lang/ekcc/internal/types"
)

// runExistsPass requires exactly one defined function named "run",
// returning int, taking no parameters.
type runExistsPass struct{}

func (runExistsPass) Name() string { return "run-function-exists" }

func (runExistsPass) Run(prog *ast.Program, ctx *Context) *errors.CompilerError {
	var run *ast.FunctionDecl
	count := 0
	for _, fn := range prog.Functions {
		if fn.Name == "run" {
			run = fn
			count++
		}
	}

	if count != 1 {
		pos := lexer.Position{Line: 1, Column: 1}
		if len(prog.Functions) > 0 {
			pos = prog.Functions[0].Pos()
		}
		return missingOrBadRun(ctx, pos)
	}
	if !run.ReturnType.Equal(types.Scalar(types.Int)) || len(run.Params) != 0 {
		return missingOrBadRun(ctx, run.Pos())
	}
	return nil
}

func missingOrBadRun(ctx *Context, pos lexer.Position) *errors.CompilerError {
	return errors.NewCompilerError(errors.KindMissingOrBadRun, pos,
		"exactly one function named \"run\", returning int with no parameters, is required", ctx.Source, ctx.File)
}
