package ir

import (
	"fmt"

	irtypes "github.com/llir/llvm/ir/types"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"

	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/types"
)

// genExpr lowers e to the SSA value it evaluates to. Variable reads are
// always loaded through one level of indirection — every binding, be it
// an owned local's alloca or an incoming reference pointer, is a pointer
// to the scalar value, so there is exactly one load path regardless of
// which kind of binding backs the name.
func (f *genFunc) genExpr(e ast.Expression) (value.Value, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return literalValue(n), nil

	case *ast.VarRef:
		b := f.lookup(n.Name)
		return f.cur.NewLoad(b.elem, b.ptr), nil

	case *ast.CallExpr:
		return f.genCall(n)

	case *ast.UnaryExpr:
		return f.genUnary(n)

	case *ast.BinaryExpr:
		return f.genBinary(n)

	case *ast.AssignExpr:
		return f.genAssign(n)

	case *ast.CastExpr:
		return f.genCast(n)

	default:
		return nil, fmt.Errorf("ir: unhandled expression %T", e)
	}
}

func literalValue(n *ast.Literal) value.Value {
	switch n.Kind {
	case types.Float:
		return constant.NewFloat(irtypes.Float, float64(n.FloatVal))
	case types.Bool:
		if n.BoolVal {
			return constant.True
		}
		return constant.False
	default:
		return constant.NewInt(irtypes.I32, int64(n.IntVal))
	}
}

func (f *genFunc) genCall(n *ast.CallExpr) (value.Value, error) {
	sig := f.gen.ctx.Functions[n.Callee]
	callee := f.gen.funcByName(n.Callee)
	if callee == nil {
		return nil, fmt.Errorf("call to %q: no IR function was emitted for it", n.Callee)
	}

	args := make([]value.Value, len(n.Arguments))
	for i, argExpr := range n.Arguments {
		paramType := sig.ParamTypes[i]
		if paramType.Ref {
			// Call-site reference-argument shape is enforced during
			// semantic analysis: a reference parameter's argument must
			// already be a bare variable reference.
			ref, ok := argExpr.(*ast.VarRef)
			if !ok {
				return nil, fmt.Errorf("call to %q: argument %d is not a bare variable reference", n.Callee, i)
			}
			args[i] = f.lookup(ref.Name).ptr
			continue
		}
		val, err := f.genExpr(argExpr)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}
	return f.cur.NewCall(callee, args...), nil
}


func (f *genFunc) genUnary(n *ast.UnaryExpr) (value.Value, error) {
	operand, err := f.genExpr(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpNot:
		return f.cur.NewXor(operand, constant.True), nil
	case ast.OpNeg:
		if n.Operand.ResolvedType().Kind == types.Float {
			return f.cur.NewFSub(constant.NewFloat(irtypes.Float, 0), operand), nil
		}
		if n.Operand.ResolvedType().Kind == types.CInt {
			isMin := f.cur.NewICmp(enum.IPredEQ, operand, constant.NewInt(irtypes.I32, -2147483648))
			f.branchIfOverflow(isMin)
		}
		return f.cur.NewSub(constant.NewInt(irtypes.I32, 0), operand), nil
	default:
		return nil, fmt.Errorf("ir: unhandled unary operator %v", n.Op)
	}
}

func (f *genFunc) genBinary(n *ast.BinaryExpr) (value.Value, error) {
	lhs, err := f.genExpr(n.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := f.genExpr(n.Right)
	if err != nil {
		return nil, err
	}

	operandIsFloat := n.Left.ResolvedType().Kind == types.Float
	isCInt := n.Left.ResolvedType().Kind == types.CInt || n.Right.ResolvedType().Kind == types.CInt

	switch n.Op {
	case ast.OpAnd:
		return f.cur.NewAnd(lhs, rhs), nil
	case ast.OpOr:
		return f.cur.NewOr(lhs, rhs), nil
	case ast.OpEq, ast.OpLt, ast.OpGt:
		if operandIsFloat {
			return f.cur.NewFCmp(fpred(n.Op), lhs, rhs), nil
		}
		return f.cur.NewICmp(ipred(n.Op), lhs, rhs), nil
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		if operandIsFloat {
			return f.genFloatArith(n.Op, lhs, rhs), nil
		}
		if isCInt {
			return f.genCheckedArith(n.Op, lhs, rhs)
		}
		return f.genPlainArith(n.Op, lhs, rhs), nil
	default:
		return nil, fmt.Errorf("ir: unhandled binary operator %v", n.Op)
	}
}

func ipred(op ast.BinaryOp) enum.IPred {
	switch op {
	case ast.OpEq:
		return enum.IPredEQ
	case ast.OpLt:
		return enum.IPredSLT
	default:
		return enum.IPredSGT
	}
}

func fpred(op ast.BinaryOp) enum.FPred {
	switch op {
	case ast.OpEq:
		return enum.FPredOEQ
	case ast.OpLt:
		return enum.FPredOLT
	default:
		return enum.FPredOGT
	}
}

func (f *genFunc) genFloatArith(op ast.BinaryOp, lhs, rhs value.Value) value.Value {
	switch op {
	case ast.OpAdd:
		return f.cur.NewFAdd(lhs, rhs)
	case ast.OpSub:
		return f.cur.NewFSub(lhs, rhs)
	case ast.OpMul:
		return f.cur.NewFMul(lhs, rhs)
	default:
		return f.cur.NewFDiv(lhs, rhs)
	}
}

func (f *genFunc) genPlainArith(op ast.BinaryOp, lhs, rhs value.Value) value.Value {
	switch op {
	case ast.OpAdd:
		return f.cur.NewAdd(lhs, rhs)
	case ast.OpSub:
		return f.cur.NewSub(lhs, rhs)
	case ast.OpMul:
		return f.cur.NewMul(lhs, rhs)
	default:
		return f.cur.NewSDiv(lhs, rhs)
	}
}

// genCheckedArith lowers a cint arithmetic op to its overflow-checked
// intrinsic form (division instead gets explicit INT_MIN/-1 and /0
// guards), trapping in place on overflow and otherwise continuing with
// the (possibly wrapped) result.
func (f *genFunc) genCheckedArith(op ast.BinaryOp, lhs, rhs value.Value) (value.Value, error) {
	if op == ast.OpDiv {
		return f.genCheckedDiv(lhs, rhs), nil
	}
	var intrinsic = f.gen.addWithOverflow()
	switch op {
	case ast.OpSub:
		intrinsic = f.gen.subWithOverflow()
	case ast.OpMul:
		intrinsic = f.gen.mulWithOverflow()
	}
	result := f.cur.NewCall(intrinsic, lhs, rhs)
	value_ := f.cur.NewExtractValue(result, 0)
	overflowed := f.cur.NewExtractValue(result, 1)
	f.branchIfOverflow(overflowed)
	return value_, nil
}

func (f *genFunc) genCheckedDiv(lhs, rhs value.Value) value.Value {
	isMinDividend := f.cur.NewICmp(enum.IPredEQ, lhs, constant.NewInt(irtypes.I32, -2147483648))
	isNegOne := f.cur.NewICmp(enum.IPredEQ, rhs, constant.NewInt(irtypes.I32, -1))
	isZero := f.cur.NewICmp(enum.IPredEQ, rhs, constant.NewInt(irtypes.I32, 0))
	minOverNegOne := f.cur.NewAnd(isMinDividend, isNegOne)
	unsafe := f.cur.NewOr(minOverNegOne, isZero)
	f.branchIfOverflow(unsafe)
	return f.cur.NewSDiv(lhs, rhs)
}

// branchIfOverflow splits the current block on cond: if set, execution
// prints the fixed overflow message and falls through to a continuation
// block; generation resumes in that continuation either way, since the
// trap never aborts the program.
func (f *genFunc) branchIfOverflow(cond value.Value) {
	trap := f.fn.NewBlock("")
	cont := f.fn.NewBlock("")
	f.cur.NewCondBr(cond, trap, cont)
	f.cur = trap
	f.emitPrintString(overflowMessage)
	f.cur.NewBr(cont)
	f.cur = cont
}

func (f *genFunc) genAssign(n *ast.AssignExpr) (value.Value, error) {
	val, err := f.genExpr(n.Value)
	if err != nil {
		return nil, err
	}
	b := f.lookup(n.Name)
	coerced, err := coerceStore(f, val, lowerType(n.Value.ResolvedType()), b.elem)
	if err != nil {
		return nil, fmt.Errorf("assigning to %q: %w", n.Name, err)
	}
	f.cur.NewStore(coerced, b.ptr)
	return coerced, nil
}

func (f *genFunc) genCast(n *ast.CastExpr) (value.Value, error) {
	val, err := f.genExpr(n.Value)
	if err != nil {
		return nil, err
	}
	src := lowerType(n.Value.ResolvedType())
	dst := lowerType(n.Target)
	if src == dst {
		return val, nil
	}
	if src == irtypes.Float && dst == irtypes.I32 {
		return f.cur.NewFPToSI(val, irtypes.I32), nil
	}
	if src == irtypes.I32 && dst == irtypes.Float {
		return f.cur.NewSIToFP(val, irtypes.Float), nil
	}
	// Every other direction emits no conversion and returns the operand
	// unchanged; the type-annotation pass does not reject such casts.
	return val, nil
}

// coerceStore applies the scalar coercion table (destination on the
// left) ahead of a vardecl or assignment store. i32 destinations widen
// an i1 with zext and narrow an f32 with fptosi; f32 destinations widen
// both i1 and i32 with uitofp, matching the table exactly (not sitofp —
// this is the documented coercion behavior, distinct from the sitofp an
// explicit `[float]` cast performs). i1 destinations never coerce.
func coerceStore(f *genFunc, val value.Value, src, dst irtypes.Type) (value.Value, error) {
	if src == dst {
		return val, nil
	}
	switch dst {
	case irtypes.I32:
		if src == irtypes.I1 {
			return f.cur.NewZExt(val, irtypes.I32), nil
		}
		if src == irtypes.Float {
			return f.cur.NewFPToSI(val, irtypes.I32), nil
		}
	case irtypes.Float:
		if src == irtypes.I1 || src == irtypes.I32 {
			return f.cur.NewUIToFP(val, irtypes.Float), nil
		}
	}
	return nil, fmt.Errorf("no coercion from %v to %v", src, dst)
}
