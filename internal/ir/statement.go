package ir

import (
	"fmt"

	"github.com/llir/llvm/ir"

	"github.com/ekcc-lang/ekcc/internal/ast"
)

// genBlock lowers every statement of b in order against the current
// variable scope, pushing a fresh scope for the block's own
// declarations. It returns whether the block definitely terminates
// (ends in ret on every path reached) — statements after a terminator
// are unreachable and are skipped, matching the block statement's
// lowering rule.
func (f *genFunc) genBlock(b *ast.BlockStmt) (bool, error) {
	f.pushScope()
	defer f.popScope()

	for _, stmt := range b.Statements {
		terminated, err := f.genStmt(stmt)
		if err != nil {
			return false, err
		}
		if terminated {
			return true, nil
		}
	}
	return false, nil
}

func (f *genFunc) genStmt(s ast.Statement) (bool, error) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		return f.genBlock(n)

	case *ast.ReturnStmt:
		if n.Value == nil {
			f.cur.NewRet(nil)
			return true, nil
		}
		val, err := f.genExpr(n.Value)
		if err != nil {
			return false, err
		}
		f.cur.NewRet(val)
		return true, nil

	case *ast.ExprStmt:
		_, err := f.genExpr(n.Expression)
		return false, err

	case *ast.IfStmt:
		return f.genIf(n)

	case *ast.WhileStmt:
		return false, f.genWhile(n)

	case *ast.PrintValueStmt:
		return false, f.genPrintValue(n)

	case *ast.PrintStringStmt:
		f.emitPrintString(n.Text)
		return false, nil

	case *ast.VarDeclStmt:
		return false, f.genVarDecl(n)

	default:
		return false, fmt.Errorf("ir: unhandled statement %T", s)
	}
}

// genIf evaluates the condition in the current block, then splits into
// then/else/merge blocks. When both arms terminate, the merge block is
// discarded — nothing in the function ever falls back into it.
func (f *genFunc) genIf(n *ast.IfStmt) (bool, error) {
	cond, err := f.genExpr(n.Condition)
	if err != nil {
		return false, err
	}

	thenBlock := f.fn.NewBlock("")
	var elseBlock *ir.Block
	mergeBlock := f.fn.NewBlock("")

	if n.Else != nil {
		elseBlock = f.fn.NewBlock("")
		f.cur.NewCondBr(cond, thenBlock, elseBlock)
	} else {
		f.cur.NewCondBr(cond, thenBlock, mergeBlock)
	}

	f.cur = thenBlock
	thenTerminated, err := f.genStmt(n.Then)
	if err != nil {
		return false, err
	}
	if !thenTerminated {
		f.cur.NewBr(mergeBlock)
	}

	elseTerminated := false
	if n.Else != nil {
		f.cur = elseBlock
		elseTerminated, err = f.genStmt(n.Else)
		if err != nil {
			return false, err
		}
		if !elseTerminated {
			f.cur.NewBr(mergeBlock)
		}
	}

	bothTerminate := n.Else != nil && thenTerminated && elseTerminated
	if bothTerminate {
		removeBlock(f.fn, mergeBlock)
		return true, nil
	}
	f.cur = mergeBlock
	return false, nil
}

// genWhile synthesizes body/after blocks; the condition is evaluated
// once before entering the loop and again at the tail of the body,
// which is how the back-edge is formed — there is no separate header
// block.
func (f *genFunc) genWhile(n *ast.WhileStmt) error {
	body := f.fn.NewBlock("")
	after := f.fn.NewBlock("")

	cond, err := f.genExpr(n.Condition)
	if err != nil {
		return err
	}
	f.cur.NewCondBr(cond, body, after)

	f.cur = body
	terminated, err := f.genStmt(n.Body)
	if err != nil {
		return err
	}
	if !terminated {
		cond, err = f.genExpr(n.Condition)
		if err != nil {
			return err
		}
		f.cur.NewCondBr(cond, body, after)
	}

	f.cur = after
	return nil
}

func (f *genFunc) genVarDecl(n *ast.VarDeclStmt) error {
	if n.Decl.Type.Ref {
		// The initializer is guaranteed to be a bare variable reference
		// by semantic analysis; bind the name straight to its address
		// instead of allocating a fresh slot.
		ref := n.Value.(*ast.VarRef)
		f.define(n.Decl.Name, f.lookup(ref.Name))
		return nil
	}

	val, err := f.genExpr(n.Value)
	if err != nil {
		return err
	}
	elem := lowerType(n.Decl.Type)
	// Unlike parameter slots, a local's alloca lives in the block where
	// it is declared, not the entry block — the entry block holds only
	// the parameter allocas/stores from the calling convention.
	slot := f.cur.NewAlloca(elem)
	coerced, err := coerceStore(f, val, lowerType(n.Value.ResolvedType()), elem)
	if err != nil {
		return fmt.Errorf("declaring %q: %w", n.Decl.Name, err)
	}
	f.cur.NewStore(coerced, slot)
	f.define(n.Decl.Name, binding{ptr: slot, elem: elem})
	return nil
}

// removeBlock drops an unreachable merge block from fn, used when both
// arms of an if always terminate.
func removeBlock(fn *ir.Func, target *ir.Block) {
	for i, b := range fn.Blocks {
		if b == target {
			fn.Blocks = append(fn.Blocks[:i], fn.Blocks[i+1:]...)
			return
		}
	}
}
