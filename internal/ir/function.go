package ir

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/types"
)

// binding is what a variable name resolves to inside a function body: the
// pointer it is stored behind (an alloca for an owned local, or the raw
// incoming pointer for a reference parameter) and the lowered element
// type a load through that pointer produces.
type binding struct {
	ptr  value.Value
	elem irtypes.Type
}

// genFunc carries the per-function state threaded through statement and
// expression lowering: the function being built, the block instructions
// are currently being appended to, and the variable scope stack.
type genFunc struct {
	gen   *Generator
	fn    *ir.Func
	entry *ir.Block
	cur   *ir.Block
	scope []map[string]binding
}

func (f *genFunc) pushScope() { f.scope = append(f.scope, make(map[string]binding)) }
func (f *genFunc) popScope()  { f.scope = f.scope[:len(f.scope)-1] }

func (f *genFunc) define(name string, b binding) {
	f.scope[len(f.scope)-1][name] = b
}

func (f *genFunc) lookup(name string) binding {
	for i := len(f.scope) - 1; i >= 0; i-- {
		if b, ok := f.scope[i][name]; ok {
			return b
		}
	}
	panic("ir: unresolved variable \"" + name + "\" escaped semantic analysis")
}

// generateFunction lowers one source function definition into an IR
// function: the entry block performs every parameter alloca/store (or,
// for reference parameters, binds the name straight to the incoming
// pointer), then the body is walked statement by statement.
func (g *Generator) generateFunction(decl *ast.FunctionDecl) error {
	sig := g.ctx.Functions[decl.Name]

	irParams := make([]*ir.Param, len(decl.Params))
	for i, p := range decl.Params {
		irParams[i] = ir.NewParam(paramIRName(p.Name), lowerType(p.Type))
		if p.Type.Ref && p.Type.NoAlias {
			irParams[i].Attrs = append(irParams[i].Attrs, enum.ParamAttrNoAlias)
		}
	}

	fn := g.module.NewFunc(decl.Name, lowerType(decl.ReturnType), irParams...)
	entry := fn.NewBlock("entry")

	gf := &genFunc{gen: g, fn: fn, entry: entry, cur: entry}
	gf.pushScope()

	for i, p := range decl.Params {
		irParam := irParams[i]
		if p.Type.Ref {
			gf.define(p.Name, binding{ptr: irParam, elem: lowerScalar(p.Type.Kind)})
			continue
		}
		elem := lowerType(p.Type)
		slot := entry.NewAlloca(elem)
		entry.NewStore(irParam, slot)
		gf.define(p.Name, binding{ptr: slot, elem: elem})
	}

	body := fn.NewBlock("")
	entry.NewBr(body)
	gf.cur = body

	terminated, err := gf.genBlock(decl.Body)
	if err != nil {
		return fmt.Errorf("function %q: %w", decl.Name, err)
	}
	if !terminated {
		if decl.ReturnType.IsVoid() {
			gf.cur.NewRet(nil)
		} else {
			return fmt.Errorf("function %q: missing return on a path that falls off the end", decl.Name)
		}
	}

	gf.popScope()
	_ = sig // genCall reads the parameter types' ref-ness at call sites; no call site consults the cint flags
	return nil
}

// paramIRName strips the leading '$' sigil so the IR's textual form
// reads like a normal LLVM identifier.
func paramIRName(name string) string {
	if len(name) > 0 && name[0] == '$' {
		return name[1:]
	}
	return name
}

// stripRef mirrors semantic.stripRef for the IR side: the type a
// reference-parameter's name resolves to in expression position.
func stripRef(t types.Type) types.Type {
	if !t.Ref {
		return t
	}
	return types.Scalar(t.Kind)
}
