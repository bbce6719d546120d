package ir

import (
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	irtypes "github.com/llir/llvm/ir/types"

	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/types"
)

// genPrintValue lowers `print expr;`. The operand's resolved type picks
// the format string: a bool is zero-extended to i32 first, a float is
// widened to double, an int is printed as-is.
func (f *genFunc) genPrintValue(n *ast.PrintValueStmt) error {
	val, err := f.genExpr(n.Value)
	if err != nil {
		return err
	}

	kind := n.Value.ResolvedType().Kind
	if kind == types.Bool {
		val = f.cur.NewZExt(val, irtypes.I32)
		kind = types.Int
	}
	if kind == types.Float {
		val = f.cur.NewFPExt(val, irtypes.Double)
	}

	fmtGlobal := f.gen.formatStringFor(kind)
	f.cur.NewCall(f.gen.printf, bitcastToI8Ptr(f, fmtGlobal), val)
	return nil
}

// emitPrintString lowers `print "text";` and the fixed overflow-trap
// message through the same printf call path: the literal, with a
// trailing space and newline, is interned once per distinct text.
func (f *genFunc) emitPrintString(text string) {
	glob := f.gen.internString(literalGlobalName(text), text+" \n")
	f.cur.NewCall(f.gen.printf, bitcastToI8Ptr(f, glob))
}

// literalGlobalName derives a readable global name from a print-string
// literal's text, falling back to a generic name for anything that
// would make an awkward LLVM identifier; uniqueGlobalName handles any
// resulting collision.
func literalGlobalName(text string) string {
	name := make([]byte, 0, len(text))
	for i := 0; i < len(text) && i < 24; i++ {
		c := text[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			name = append(name, c)
		case c == ' ':
			name = append(name, '_')
		}
	}
	if len(name) == 0 {
		return "str"
	}
	return "str." + string(name)
}

// bitcastToI8Ptr reinterprets a private constant global (always i8-array
// typed) as the i8* printf expects.
func bitcastToI8Ptr(f *genFunc, glob *ir.Global) *ir.InstGetElementPtr {
	zero := constant.NewInt(irtypes.I64, 0)
	return f.cur.NewGetElementPtr(glob.ContentType, glob, zero, zero)
}

// synthesizeGetarg and synthesizeGetargf back an `extern int getarg(int)`
// / `extern float getargf(int)` declaration with a real body instead of
// a bare declaration: a module-level constant array of the host's argv
// (parsed as int or float), indexed by the function's single parameter.
func (g *Generator) synthesizeGetarg(ext *ast.ExternDecl, argv []string) error {
	return g.synthesizeGetargWithArgv("getarg", irtypes.I32, argv)
}

func (g *Generator) synthesizeGetargf(ext *ast.ExternDecl, argv []string) error {
	return g.synthesizeGetargWithArgv("getargf", irtypes.Float, argv)
}

func (g *Generator) synthesizeGetargWithArgv(name string, elemType irtypes.Type, argv []string) error {
	values := make([]constant.Constant, len(argv))
	for i, a := range argv {
		if elemType == irtypes.I32 {
			n, err := strconv.ParseInt(a, 10, 32)
			if err != nil {
				return err
			}
			values[i] = constant.NewInt(irtypes.I32, n)
		} else {
			v, err := strconv.ParseFloat(a, 32)
			if err != nil {
				return err
			}
			values[i] = constant.NewFloat(irtypes.Float, v)
		}
	}
	arrayType := irtypes.NewArray(uint64(len(values)), elemType)
	arrData := constant.NewArray(arrayType, values...)
	arrGlobal := g.module.NewGlobalDef(uniqueGlobalName(g.module, name+".argv"), arrData)
	arrGlobal.Immutable = true

	idxParam := ir.NewParam("index", irtypes.I32)
	fn := g.module.NewFunc(name, elemType, idxParam)
	entry := fn.NewBlock("entry")

	slot := entry.NewAlloca(irtypes.I32)
	entry.NewStore(idxParam, slot)
	idx := entry.NewLoad(irtypes.I32, slot)

	zero := constant.NewInt(irtypes.I32, 0)
	addr := entry.NewGetElementPtr(arrayType, arrGlobal, zero, idx)
	entry.NewRet(entry.NewLoad(elemType, addr))
	return nil
}

