package semantic

import (
	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/errors"
	"github.com/ekcc-lang/ekcc/internal/lexer"
	"github.com/ekcc-lang/ekcc/internal/types"
)

// functionTablePass builds the global function table in source order —
// externs first, then definitions — and rejects calls to names not yet
// in the table at the point their enclosing function is processed. A
// function is inserted before its own body is checked, so self-recursion
// is fine; a call to a function defined later in the source is not.
type functionTablePass struct{}

func (functionTablePass) Name() string { return "function-table" }

func (functionTablePass) Run(prog *ast.Program, ctx *Context) *errors.CompilerError {
	for _, ext := range prog.Externs {
		if _, dup := ctx.Functions[ext.Name]; dup {
			return duplicateFunction(ctx, ext.Pos(), ext.Name)
		}
		ctx.Functions[ext.Name] = &FuncSig{
			Name:       ext.Name,
			ReturnType: ext.ReturnType,
			ParamTypes: ext.ParamTypes,
			IsExtern:   true,
		}
	}

	for _, fn := range prog.Functions {
		if _, dup := ctx.Functions[fn.Name]; dup {
			return duplicateFunction(ctx, fn.Pos(), fn.Name)
		}
		ctx.Functions[fn.Name] = &FuncSig{
			Name:       fn.Name,
			ReturnType: fn.ReturnType,
			ParamTypes: paramTypesOf(fn),
		}

		var found *errors.CompilerError
		walkFunctionBody(fn, func(s ast.Statement) {
			if found != nil {
				return
			}
			walkExpressionsIn(s, func(e ast.Expression) {
				if found != nil {
					return
				}
				call, ok := e.(*ast.CallExpr)
				if !ok {
					return
				}
				if _, known := ctx.Functions[call.Callee]; !known {
					found = errors.NewCompilerError(errors.KindUndeclaredFunction, call.Pos(),
						"call to undeclared function \""+call.Callee+"\"", ctx.Source, ctx.File)
				}
			})
		})
		if found != nil {
			return found
		}
	}
	return nil
}

func duplicateFunction(ctx *Context, pos lexer.Position, name string) *errors.CompilerError {
	return errors.NewCompilerError(errors.KindDuplicateFunction, pos,
		"\""+name+"\" is declared more than once as a global function", ctx.Source, ctx.File)
}

func paramTypesOf(fn *ast.FunctionDecl) []types.Type {
	out := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		out[i] = p.Type
	}
	return out
}
