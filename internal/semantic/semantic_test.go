package semantic

import (
	"testing"

	"github.com/ekcc-lang/ekcc/internal/errors"
	"github.com/ekcc-lang/ekcc/internal/lexer"
	"github.com/ekcc-lang/ekcc/internal/parser"
)

func mustAnalyze(t *testing.T, src string) (*Context, *errors.CompilerError) {
	t.Helper()
	prog, err := parser.Parse(lexer.New(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return Analyze(prog, src, "test.ek")
}

func TestAnalyzeAcceptsMinimalRun(t *testing.T) {
	_, err := mustAnalyze(t, `def int run() { return 2 + 3; }`)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestAnalyzeRejectsVoidLocal(t *testing.T) {
	_, err := mustAnalyze(t, `def int run() { void $x = 0; return 0; }`)
	if err == nil || err.Kind != errors.KindBadDeclarationType {
		t.Fatalf("expected bad-declaration-type, got %v", err)
	}
}

func TestAnalyzeRejectsRefVoidParam(t *testing.T) {
	_, err := mustAnalyze(t, `def int run(ref void $x) { return 0; }`)
	if err == nil || err.Kind != errors.KindBadReferenceType {
		t.Fatalf("expected bad-reference-type, got %v", err)
	}
}

func TestAnalyzeRejectsNestedRef(t *testing.T) {
	_, err := mustAnalyze(t, `def int run(ref ref int $x) { return 0; }`)
	if err == nil || err.Kind != errors.KindBadReferenceType {
		t.Fatalf("expected bad-reference-type, got %v", err)
	}
}

func TestAnalyzeRejectsUndeclaredFunctionCall(t *testing.T) {
	_, err := mustAnalyze(t, `def int run() { return missing(); }`)
	if err == nil || err.Kind != errors.KindUndeclaredFunction {
		t.Fatalf("expected undeclared-function, got %v", err)
	}
}

func TestAnalyzeAllowsForwardCallToPriorFunction(t *testing.T) {
	_, err := mustAnalyze(t, `
		def int helper() { return 1; }
		def int run() { return helper(); }
	`)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestAnalyzeRejectsCallToLaterFunction(t *testing.T) {
	_, err := mustAnalyze(t, `
		def int run() { return helper(); }
		def int helper() { return 1; }
	`)
	if err == nil || err.Kind != errors.KindUndeclaredFunction {
		t.Fatalf("expected undeclared-function, got %v", err)
	}
}

func TestAnalyzeAllowsSelfRecursion(t *testing.T) {
	_, err := mustAnalyze(t, `
		def int fact(int $n) { return fact($n); }
		def int run() { return fact(5); }
	`)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestAnalyzeRejectsDuplicateFunctionName(t *testing.T) {
	_, err := mustAnalyze(t, `
		def int run() { return 0; }
		def int run() { return 1; }
	`)
	if err == nil || err.Kind != errors.KindDuplicateFunction {
		t.Fatalf("expected duplicate-function, got %v", err)
	}
}

func TestAnalyzeRejectsExternDuplicatingDef(t *testing.T) {
	_, err := mustAnalyze(t, `
		extern int run();
		def int run() { return 0; }
	`)
	if err == nil || err.Kind != errors.KindDuplicateFunction {
		t.Fatalf("expected duplicate-function, got %v", err)
	}
}

func TestAnalyzeRejectsReferenceReturn(t *testing.T) {
	_, err := mustAnalyze(t, `def ref int run() { return 0; }`)
	if err == nil || err.Kind != errors.KindReferenceReturn {
		t.Fatalf("expected reference-return, got %v", err)
	}
}

func TestAnalyzeRejectsBadReferenceInit(t *testing.T) {
	_, err := mustAnalyze(t, `def int run() { ref int $x = 1; return 0; }`)
	if err == nil || err.Kind != errors.KindBadReferenceInit {
		t.Fatalf("expected bad-reference-init, got %v", err)
	}
}

func TestAnalyzeAcceptsReferenceInitFromVar(t *testing.T) {
	_, err := mustAnalyze(t, `def int run() { int $y = 1; ref int $x = $y; return 0; }`)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestAnalyzeRejectsNonVarRefCallArgument(t *testing.T) {
	_, err := mustAnalyze(t, `
		def int bump(ref int $x) { $x = $x + 1; return 0; }
		def int run() { return bump(1); }
	`)
	if err == nil || err.Kind != errors.KindBadReferenceInit {
		t.Fatalf("expected bad-reference-init, got %v", err)
	}
}

func TestAnalyzeAcceptsVarRefCallArgument(t *testing.T) {
	_, err := mustAnalyze(t, `
		def int bump(ref int $x) { $x = $x + 1; return 0; }
		def int run() { int $y = 0; bump($y); return $y; }
	`)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestAnalyzeRejectsMissingRun(t *testing.T) {
	_, err := mustAnalyze(t, `def int notrun() { return 0; }`)
	if err == nil || err.Kind != errors.KindMissingOrBadRun {
		t.Fatalf("expected missing-or-bad-run, got %v", err)
	}
}

func TestAnalyzeRejectsRunWithParams(t *testing.T) {
	_, err := mustAnalyze(t, `def int run(int $x) { return $x; }`)
	if err == nil || err.Kind != errors.KindMissingOrBadRun {
		t.Fatalf("expected missing-or-bad-run, got %v", err)
	}
}

func TestAnalyzeRejectsRunWrongReturnType(t *testing.T) {
	_, err := mustAnalyze(t, `def float run() { return 0.0; }`)
	if err == nil || err.Kind != errors.KindMissingOrBadRun {
		t.Fatalf("expected missing-or-bad-run, got %v", err)
	}
}

func TestAnalyzeRejectsUndefinedVariable(t *testing.T) {
	_, err := mustAnalyze(t, `def int run() { return $missing; }`)
	if err == nil || err.Kind != errors.KindUndefinedVariable {
		t.Fatalf("expected undefined-variable, got %v", err)
	}
}

func TestAnalyzeRejectsIntFloatBinopMismatch(t *testing.T) {
	_, err := mustAnalyze(t, `def int run() { return 1 + 2.0; }`)
	if err == nil || err.Kind != errors.KindTypeMismatch {
		t.Fatalf("expected type-mismatch, got %v", err)
	}
}

func TestAnalyzeAllowsCIntAndIntLiteralTogether(t *testing.T) {
	// Scenario 3: a cint variable must remain binop-compatible with a
	// plain int literal, since cint and int share one representation and
	// differ only in whether overflow traps.
	_, err := mustAnalyze(t, `def int run() { cint $x = 2147483647; $x = $x + 1; return 0; }`)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestAnalyzeWhileLoopWithReassignment(t *testing.T) {
	_, err := mustAnalyze(t, `def int run() { int $i = 0; while ($i < 3) { print $i; $i = $i + 1; } return 0; }`)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestAnalyzeCastChangesResolvedType(t *testing.T) {
	_, err := mustAnalyze(t, `def int run() { float $f = 3.5; int $i = [int] $f; print $i; return $i; }`)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestAnalyzeGetargExternRoundTrips(t *testing.T) {
	_, err := mustAnalyze(t, `
		extern int getarg(int);
		def int run() { return getarg(0); }
	`)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestAnalyzeBlockScopeDoesNotLeak(t *testing.T) {
	_, err := mustAnalyze(t, `
		def int run() {
			if (1 < 2) {
				int $inner = 1;
			}
			return $inner;
		}
	`)
	if err == nil || err.Kind != errors.KindUndefinedVariable {
		t.Fatalf("expected undefined-variable for out-of-scope read, got %v", err)
	}
}
