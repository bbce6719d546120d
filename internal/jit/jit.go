// Package jit runs a compiled module through the LLVM IR interpreter,
// lli, standing in for the "real" JIT engine spec.md describes as a
// collaborator consumed through a narrow interface rather than
// vendored into this repository. A module is serialized to a temp .ll
// file and handed to lli as a subprocess; its exit code becomes this
// program's own, mirroring the original's codegen.execute() followed
// by sys.exit(result).
package jit

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/llir/llvm/ir"
)

// Result carries everything Run observed about the lli subprocess: the
// text it wrote to stdout (print statements land here), the text it
// wrote to stderr, and the process's own exit code.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Options controls how lli is invoked.
type Options struct {
	// Optimize requests lli's -O3 pass pipeline, the `-O` flag's
	// counterpart to the original's optional PassManagerBuilder-driven
	// optimization pipeline ahead of JIT execution.
	Optimize bool
}

// Run serializes module to a temporary .ll file and executes it with
// lli, forwarding args as the module's own argv (consumed in turn by
// any getarg/getargf accessor baked into the module). It returns a
// populated Result even when lli exits non-zero; the error return is
// reserved for failures to invoke lli at all (missing binary, I/O
// failure writing the temp file).
func Run(module *ir.Module, args []string, opts Options) (Result, error) {
	path, err := writeTempModule(module)
	if err != nil {
		return Result{}, err
	}
	defer os.Remove(path)

	return runLLI(path, args, opts)
}

func writeTempModule(module *ir.Module) (string, error) {
	f, err := os.CreateTemp("", "ekcc-*.ll")
	if err != nil {
		return "", fmt.Errorf("jit: creating temp module file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(module.String()); err != nil {
		return "", fmt.Errorf("jit: writing temp module file: %w", err)
	}
	return f.Name(), nil
}

func runLLI(path string, args []string, opts Options) (Result, error) {
	lliArgs := []string{}
	if opts.Optimize {
		lliArgs = append(lliArgs, "-O3")
	}
	lliArgs = append(lliArgs, path)
	lliArgs = append(lliArgs, args...)

	cmd := exec.Command("lli", lliArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		result.ExitCode = 0
	case errors.As(runErr, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return result, fmt.Errorf("jit: invoking lli: %w", runErr)
	}
	return result, nil
}
