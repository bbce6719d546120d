package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func buildEkcc(t *testing.T) string {
	t.Helper()
	binary, err := filepath.Abs("../../bin/ekcc")
	if err != nil {
		t.Fatalf("resolving binary path: %v", err)
	}
	buildCmd := exec.Command("go", "build", "-o", binary, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build ekcc: %v\n%s", err, out)
	}
	return binary
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "*.ek")
	if err != nil {
		t.Fatalf("creating temp script: %v", err)
	}
	if _, err := f.WriteString(source); err != nil {
		t.Fatalf("writing temp script: %v", err)
	}
	f.Close()
	return f.Name()
}

func TestLexCommandPrintsTokens(t *testing.T) {
	binary := buildEkcc(t)
	script := writeScript(t, `def int run() { return 1; }`)

	cmd := exec.Command(binary, "lex", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("lex failed: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), `"def"`) {
		t.Errorf("expected token dump to mention \"def\", got:\n%s", output)
	}
}

func TestParseCommandEchoesProgram(t *testing.T) {
	binary := buildEkcc(t)
	script := writeScript(t, `def int run() { return 2 + 3; }`)

	cmd := exec.Command(binary, "parse", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("parse failed: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "run") {
		t.Errorf("expected AST dump to mention \"run\", got:\n%s", output)
	}
}

func TestParseCommandReportsSyntaxError(t *testing.T) {
	binary := buildEkcc(t)
	script := writeScript(t, `def int run() { return ; }`)

	cmd := exec.Command(binary, "parse", script)
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected parse to fail, got success with output:\n%s", output)
	}
	if !strings.Contains(string(output), "syntax-error") {
		t.Errorf("expected a syntax-error diagnostic, got:\n%s", output)
	}
}

func TestCompileCommandWritesIRFile(t *testing.T) {
	binary := buildEkcc(t)
	script := writeScript(t, `def int run() { return 2 + 3; }`)
	outFile := strings.TrimSuffix(script, ".ek") + ".ll"

	cmd := exec.Command(binary, "compile", script, "-o", outFile)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("compile failed: %v\n%s", err, output)
	}

	ir, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("expected IR file %s to exist: %v", outFile, err)
	}
	if !strings.Contains(string(ir), "define i32 @run()") {
		t.Errorf("expected emitted IR to define run(), got:\n%s", ir)
	}
}

func TestRunCommandWithoutJITPrintsIR(t *testing.T) {
	binary := buildEkcc(t)
	script := writeScript(t, `def int run() { return 2 + 3; }`)

	cmd := exec.Command(binary, "run", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "define i32 @run()") {
		t.Errorf("expected printed IR module, got:\n%s", output)
	}
}

func TestRunCommandWithJITReturnsExitCode(t *testing.T) {
	if _, err := exec.LookPath("lli"); err != nil {
		t.Skip("lli not found on PATH, skipping JIT integration test")
	}
	binary := buildEkcc(t)
	script := writeScript(t, `def int run() { return 2 + 3; }`)

	cmd := exec.Command(binary, "run", script, "--jit")
	output, _ := cmd.CombinedOutput()
	if !strings.Contains(string(output), "exit: 5") {
		t.Errorf("expected \"exit: 5\" in output, got:\n%s", output)
	}
}
