package semantic

import (
	"strconv"

	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/errors"
)

// callArgShapePass requires that every call-site argument bound to a
// reference parameter is a bare variable reference — the same shape
// restriction refInitPass enforces for reference-variable initializers,
// applied at every call instead of just declarations.
type callArgShapePass struct{}

func (callArgShapePass) Name() string { return "call-argument-shape" }

func (p callArgShapePass) Run(prog *ast.Program, ctx *Context) *errors.CompilerError {
	for _, fn := range prog.Functions {
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
				found = p.checkCall(call, ctx)
			})
		})
		if found != nil {
			return found
		}
	}
	return nil
}

func (callArgShapePass) checkCall(call *ast.CallExpr, ctx *Context) *errors.CompilerError {
	sig, ok := ctx.Functions[call.Callee]
	if !ok {
		return nil
	}
	for i, param := range sig.ParamTypes {
		if i >= len(call.Arguments) || !param.IsRef() {
			continue
		}
		if _, ok := call.Arguments[i].(*ast.VarRef); !ok {
			return errors.NewCompilerError(errors.KindBadReferenceInit, call.Pos(),
				"argument "+strconv.Itoa(i+1)+" of call to \""+call.Callee+"\" binds a reference parameter and must be a bare variable reference",
				ctx.Source, ctx.File)
		}
	}
	return nil
}
