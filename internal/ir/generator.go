// Package ir lowers a decorated AST (an *ast.Program that has already
// passed every semantic.Analyze pass) into an SSA module built with
// github.com/llir/llvm. One IR function is emitted per extern and per
// source function, plus synthesized getarg/getargf accessors when the
// source program declares them.
package ir

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"

	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/semantic"
	"github.com/ekcc-lang/ekcc/internal/types"
)

// overflowMessage is the fixed diagnostic printed in place whenever a
// cint operation traps; execution continues past it rather than
// aborting.
const overflowMessage = "Error: cint value overflowed"

// Generator holds the module-level state shared across every function
// being lowered: the module itself, the semantic context (function
// table, for call-site signatures), and the interned constants every
// function's IR may reuse.
type Generator struct {
	module *ir.Module
	ctx    *semantic.Context

	printf *ir.Func

	// overflow-checking intrinsics, declared lazily and reused by every
	// cint arithmetic op across every function.
	addOverflow *ir.Func
	subOverflow *ir.Func
	mulOverflow *ir.Func

	formatStrings map[types.Kind]*ir.Global // print-value format strings, keyed by the printed operand's lowered kind
	stringLits    map[string]*ir.Global      // print-string literals, keyed by their source text
	overflowMsg   *ir.Global
}

// Generate lowers prog into a complete SSA module. ctx is the Context
// returned by semantic.Analyze over the same prog; argv is the host
// command-line arguments used to back any getarg/getargf synthesis.
func Generate(prog *ast.Program, ctx *semantic.Context, argv []string) (*ir.Module, error) {
	g := &Generator{
		module:        ir.NewModule(),
		ctx:           ctx,
		formatStrings: make(map[types.Kind]*ir.Global),
		stringLits:    make(map[string]*ir.Global),
	}
	g.module.SourceFilename = ctx.File

	g.declarePrintf()

	for _, ext := range prog.Externs {
		switch ext.Name {
		case "getarg":
			if err := g.synthesizeGetarg(ext, argv); err != nil {
				return nil, err
			}
		case "getargf":
			if err := g.synthesizeGetargf(ext, argv); err != nil {
				return nil, err
			}
		default:
			g.declareExtern(ext)
		}
	}

	for _, fn := range prog.Functions {
		if err := g.generateFunction(fn); err != nil {
			return nil, err
		}
	}

	return g.module, nil
}

// declareExtern emits a bare IR function declaration (no blocks) for a
// source extern that isn't one of the specially synthesized built-ins.
func (g *Generator) declareExtern(ext *ast.ExternDecl) {
	params := make([]*ir.Param, len(ext.ParamTypes))
	for i, t := range ext.ParamTypes {
		params[i] = ir.NewParam("", lowerType(t))
	}
	g.module.NewFunc(ext.Name, lowerType(ext.ReturnType), params...)
}

// declarePrintf declares the single variadic printf used by every
// print-value and print-string statement in the module.
func (g *Generator) declarePrintf() {
	fmtParam := ir.NewParam("", irtypes.NewPointer(irtypes.I8))
	fn := g.module.NewFunc("printf", irtypes.I32, fmtParam)
	fn.Sig.Variadic = true
	g.printf = fn
}

// overflowIntrinsic lazily declares one of the three llvm.*.with.overflow.i32
// intrinsics the cint arithmetic lowering needs, caching it across calls.
func (g *Generator) overflowIntrinsic(name string, slot **ir.Func) *ir.Func {
	if *slot != nil {
		return *slot
	}
	resultType := irtypes.NewStruct(irtypes.I32, irtypes.I1)
	fn := g.module.NewFunc(name, resultType,
		ir.NewParam("", irtypes.I32),
		ir.NewParam("", irtypes.I32))
	*slot = fn
	return fn
}

func (g *Generator) addWithOverflow() *ir.Func {
	return g.overflowIntrinsic("llvm.sadd.with.overflow.i32", &g.addOverflow)
}
func (g *Generator) subWithOverflow() *ir.Func {
	return g.overflowIntrinsic("llvm.ssub.with.overflow.i32", &g.subOverflow)
}
func (g *Generator) mulWithOverflow() *ir.Func {
	return g.overflowIntrinsic("llvm.smul.with.overflow.i32", &g.mulOverflow)
}

// internString returns the module-level private constant backing text,
// creating and caching it on first use. The stored bytes are NUL
// terminated since printf reads a raw C string.
func (g *Generator) internString(name, text string) *ir.Global {
	if glob, ok := g.stringLits[text]; ok {
		return glob
	}
	data := constant.NewCharArrayFromString(text + "\x00")
	glob := g.module.NewGlobalDef(uniqueGlobalName(g.module, name), data)
	glob.Immutable = true
	glob.Linkage = enum.LinkagePrivate
	g.stringLits[text] = glob
	return glob
}

// formatStringFor returns the interned "%i \n" / "%f \n" format constant
// for the given printed-value kind, creating it on first use.
func (g *Generator) formatStringFor(k types.Kind) *ir.Global {
	if k == types.CInt {
		k = types.Int
	}
	if glob, ok := g.formatStrings[k]; ok {
		return glob
	}
	text := "%i \n"
	name := "fmt.int"
	if k == types.Float {
		text = "%f \n"
		name = "fmt.float"
	}
	data := constant.NewCharArrayFromString(text + "\x00")
	glob := g.module.NewGlobalDef(uniqueGlobalName(g.module, name), data)
	glob.Immutable = true
	g.formatStrings[k] = glob
	return glob
}

func (g *Generator) overflowMessageGlobal() *ir.Global {
	if g.overflowMsg == nil {
		g.overflowMsg = g.internString("overflow.msg", overflowMessage)
	}
	return g.overflowMsg
}

// funcByName finds a previously emitted module-level function
// (extern, synthesized built-in, or source definition) by name.
func (g *Generator) funcByName(name string) *ir.Func {
	for _, fn := range g.module.Funcs {
		if fn.Name() == name {
			return fn
		}
	}
	return nil
}

// uniqueGlobalName appends a numeric suffix until name doesn't collide
// with an existing module-level global, mirroring how llir/llvm itself
// disambiguates unnamed values.
func uniqueGlobalName(m *ir.Module, name string) string {
	candidate := name
	for i := 0; ; i++ {
		taken := false
		for _, g := range m.Globals {
			if g.Name() == candidate {
				taken = true
				break
			}
		}
		if !taken {
			return candidate
		}
		candidate = fmt.Sprintf("%s.%d", name, i)
	}
}
