package errors

import (
	"strings"
	"testing"

	"github.com/ekcc-lang/ekcc/internal/lexer"
)

func TestFormatIncludesKindAndCaret(t *testing.T) {
	err := NewCompilerError(KindTypeMismatch, lexer.Position{Line: 2, Column: 5}, "operand types disagree", "def int run() {\n  return 1 + 2.0;\n}", "")
	out := err.Format(false)
	if !strings.Contains(out, "type-mismatch") {
		t.Fatalf("expected kind in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret in output, got %q", out)
	}
	if !strings.Contains(out, "return 1 + 2.0;") {
		t.Fatalf("expected source line in output, got %q", out)
	}
}

func TestFormatErrorsSingle(t *testing.T) {
	err := NewCompilerError(KindMissingOrBadRun, lexer.Position{Line: 1, Column: 1}, "no run function", "", "")
	out := FormatErrors([]*CompilerError{err}, false)
	if out != err.Format(false) {
		t.Fatalf("single-error FormatErrors should match Format()")
	}
}

func TestFormatErrorsMultiple(t *testing.T) {
	a := NewCompilerError(KindLexError, lexer.Position{Line: 1, Column: 1}, "bad byte", "", "")
	b := NewCompilerError(KindLexError, lexer.Position{Line: 2, Column: 1}, "bad byte", "", "")
	out := FormatErrors([]*CompilerError{a, b}, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Fatalf("expected error count in output, got %q", out)
	}
}
