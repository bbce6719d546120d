package semantic

import (
	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/errors"
)

// Analyze runs the fixed eight-pass pipeline over prog in order, aborting
// at the first failing pass. source and file are carried only for
// diagnostic rendering. On success it returns the populated Context,
// whose Functions table and every expression's resolved type the IR
// generator consumes.
func Analyze(prog *ast.Program, source, file string) (*Context, *errors.CompilerError) {
	ctx := NewContext(source, file)

	pm := NewPassManager(
		declTypesPass{},
		refWellFormedPass{},
		functionTablePass{},
		noRefReturnPass{},
		refInitPass{},
		callArgShapePass{},
		runExistsPass{},
		typeAnnotationPass{},
	)

	if err := pm.Run(prog, ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}
