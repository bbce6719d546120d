package ir_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/ekcc-lang/ekcc/internal/ir"
	"github.com/ekcc-lang/ekcc/internal/lexer"
	"github.com/ekcc-lang/ekcc/internal/parser"
	"github.com/ekcc-lang/ekcc/internal/semantic"
)

// generateModule runs a program through the full front end and IR
// generator, failing the test on the first stage that rejects it.
func generateModule(t *testing.T, source string) string {
	t.Helper()

	prog, parseErr := parser.Parse(lexer.New(source))
	if parseErr != nil {
		t.Fatalf("unexpected parse error: %v", parseErr)
	}

	ctx, semErr := semantic.Analyze(prog, source, "snapshot.ek")
	if semErr != nil {
		t.Fatalf("unexpected semantic error: %s", semErr.Format(true))
	}

	module, genErr := ir.Generate(prog, ctx, nil)
	if genErr != nil {
		t.Fatalf("unexpected IR generation error: %v", genErr)
	}
	return module.String()
}

// TestGeneratedIRSnapshots pins the textual LLVM IR emitted for a handful
// of representative programs, the same way the teacher pins interpreter
// output: by comparing against a go-snaps snapshot (recorded on the first
// run) rather than hand-written expectations baked into the test body.
func TestGeneratedIRSnapshots(t *testing.T) {
	programs := []struct {
		name   string
		source string
	}{
		{
			name:   "return_constant",
			source: `def int run() { return 2 + 3; }`,
		},
		{
			name: "print_and_ref_call",
			source: `
				def int bump(ref int $x) { $x = $x + 1; return 0; }
				def int run() { int $y = 0; bump($y); print $y; return $y; }
			`,
		},
		{
			name: "cint_overflow_guard",
			source: `def int run() { cint $a = 1; cint $b = 2; return $a + $b; }`,
		},
	}

	for _, p := range programs {
		t.Run(p.name, func(t *testing.T) {
			ir := generateModule(t, p.source)
			snaps.MatchSnapshot(t, p.name+"_ir", ir)
		})
	}
}
