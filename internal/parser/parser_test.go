package parser

import (
	"testing"

	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/lexer"
	"github.com/ekcc-lang/ekcc/internal/types"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(lexer.New(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func TestParseMinimalRun(t *testing.T) {
	prog := mustParse(t, `def int run() { return 0; }`)
	if len(prog.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(prog.Functions))
	}
	fn := prog.Functions[0]
	if fn.Name != "run" || !fn.ReturnType.Equal(types.Scalar(types.Int)) {
		t.Fatalf("unexpected function: %+v", fn)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fn.Body.Statements))
	}
}

func TestParseExternAndCall(t *testing.T) {
	prog := mustParse(t, `
		extern int getarg(int);
		def int run() { return getarg(0); }
	`)
	if len(prog.Externs) != 1 || prog.Externs[0].Name != "getarg" {
		t.Fatalf("expected one getarg extern, got %+v", prog.Externs)
	}
	ret := prog.Functions[0].Body.Statements[0].(*ast.ReturnStmt)
	call, ok := ret.Value.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", ret.Value)
	}
	if call.Callee != "getarg" || len(call.Arguments) != 1 {
		t.Fatalf("unexpected call: %+v", call)
	}
}

func TestParseExternBeforeFunctionRequired(t *testing.T) {
	_, err := Parse(lexer.New(`def int run() { return 0; } extern int getarg(int);`))
	if err == nil {
		t.Fatal("expected syntax error when extern follows a function definition")
	}
}

func TestBinaryPrecedence(t *testing.T) {
	prog := mustParse(t, `def int run() { return 1 + 2 * 3; }`)
	ret := prog.Functions[0].Body.Statements[0].(*ast.ReturnStmt)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("expected top-level add, got %+v", ret.Value)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != ast.OpMul {
		t.Fatalf("expected 2*3 grouped on the right, got %+v", bin.Right)
	}
}

func TestBinaryLeftAssociativity(t *testing.T) {
	prog := mustParse(t, `def int run() { return 1 - 2 - 3; }`)
	ret := prog.Functions[0].Body.Statements[0].(*ast.ReturnStmt)
	top, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || top.Op != ast.OpSub {
		t.Fatalf("expected top-level sub, got %+v", ret.Value)
	}
	if _, ok := top.Left.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected (1 - 2) - 3 to group left, got %+v", top.Left)
	}
	if _, ok := top.Right.(*ast.Literal); !ok {
		t.Fatalf("expected bare literal 3 on the right, got %+v", top.Right)
	}
}

func TestAssignIsRightAssociative(t *testing.T) {
	prog := mustParse(t, `def int run() { int $x = 0; int $y = 0; $x = $y = 1; return 0; }`)
	stmt := prog.Functions[0].Body.Statements[2].(*ast.ExprStmt)
	outer, ok := stmt.Expression.(*ast.AssignExpr)
	if !ok || outer.Name != "$x" {
		t.Fatalf("expected outer assign to $x, got %+v", stmt.Expression)
	}
	inner, ok := outer.Value.(*ast.AssignExpr)
	if !ok || inner.Name != "$y" {
		t.Fatalf("expected nested assign to $y, got %+v", outer.Value)
	}
}

func TestDanglingElseBindsToNearestIf(t *testing.T) {
	prog := mustParse(t, `
		def int run() {
			if (true)
				if (false)
					return 1;
				else
					return 2;
			return 0;
		}
	`)
	outer := prog.Functions[0].Body.Statements[0].(*ast.IfStmt)
	if outer.Else != nil {
		t.Fatalf("expected outer if to have no else, got %+v", outer.Else)
	}
	inner, ok := outer.Then.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected nested if as then-branch, got %+v", outer.Then)
	}
	if inner.Else == nil {
		t.Fatal("expected else to bind to the nearest if")
	}
}

func TestUnaryAndCastPrecedence(t *testing.T) {
	prog := mustParse(t, `def int run() { float $f = 3.5; int $i = [int] $f; return $i; }`)
	decl := prog.Functions[0].Body.Statements[1].(*ast.VarDeclStmt)
	cast, ok := decl.Value.(*ast.CastExpr)
	if !ok || !cast.Target.Equal(types.Scalar(types.Int)) {
		t.Fatalf("expected int cast, got %+v", decl.Value)
	}
	if _, ok := cast.Value.(*ast.VarRef); !ok {
		t.Fatalf("expected cast operand to be a var-ref, got %+v", cast.Value)
	}
}

func TestReferenceParamParses(t *testing.T) {
	prog := mustParse(t, `def void bump(noalias ref int $x) { $x = $x + 1; }`)
	fn := prog.Functions[0]
	if len(fn.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(fn.Params))
	}
	p := fn.Params[0]
	if !p.Type.IsRef() || !p.Type.NoAlias {
		t.Fatalf("expected noalias ref param, got %+v", p.Type)
	}
}

func TestWhileLoopParses(t *testing.T) {
	prog := mustParse(t, `
		def int run() {
			int $i = 0;
			while ($i < 3) {
				print $i;
				$i = $i + 1;
			}
			return 0;
		}
	`)
	loop, ok := prog.Functions[0].Body.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected while statement, got %+v", prog.Functions[0].Body.Statements[1])
	}
	cond, ok := loop.Condition.(*ast.BinaryExpr)
	if !ok || cond.Op != ast.OpLt {
		t.Fatalf("expected lt condition, got %+v", loop.Condition)
	}
}

func TestPrintStringVsPrintValue(t *testing.T) {
	prog := mustParse(t, `def int run() { print "hi"; print 1; return 0; }`)
	if _, ok := prog.Functions[0].Body.Statements[0].(*ast.PrintStringStmt); !ok {
		t.Fatalf("expected PrintStringStmt, got %T", prog.Functions[0].Body.Statements[0])
	}
	if _, ok := prog.Functions[0].Body.Statements[1].(*ast.PrintValueStmt); !ok {
		t.Fatalf("expected PrintValueStmt, got %T", prog.Functions[0].Body.Statements[1])
	}
}

func TestSyntaxErrorAbortsWithoutRecovery(t *testing.T) {
	_, err := Parse(lexer.New(`def int run() { return 0 }`))
	if err == nil {
		t.Fatal("expected a syntax error for the missing semicolon")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
}

func TestMissingRunFunctionIsStillASyntacticProgram(t *testing.T) {
	// The parser accepts any function+ ; "no run function" is a semantic
	// error, not a syntax error.
	prog := mustParse(t, `def int main() { return 0; }`)
	if len(prog.Functions) != 1 || prog.Functions[0].Name != "main" {
		t.Fatalf("unexpected program: %+v", prog)
	}
}
