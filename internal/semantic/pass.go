package semantic

import (
	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/errors"
)

// Pass is a single semantic analysis pass. Passes run in a fixed order;
// each may assume every pass before it already succeeded. A pass returns
// on its first diagnostic — there is no per-pass error accumulation, only
// whole-compile abort.
type Pass interface {
	Name() string
	Run(prog *ast.Program, ctx *Context) *errors.CompilerError
}

// PassManager runs a fixed ordered sequence of passes, stopping at the
// first one that reports a diagnostic.
type PassManager struct {
	passes []Pass
}

// NewPassManager builds a manager over passes, run in the given order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// Run executes every pass in order, returning the first diagnostic raised.
func (pm *PassManager) Run(prog *ast.Program, ctx *Context) *errors.CompilerError {
	for _, pass := range pm.passes {
		if err := pass.Run(prog, ctx); err != nil {
			return err
		}
	}
	return nil
}
