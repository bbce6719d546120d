package cmd

import (
	"fmt"
	"os"

	"github.com/ekcc-lang/ekcc/internal/ast"
	"github.com/ekcc-lang/ekcc/internal/errors"
	"github.com/ekcc-lang/ekcc/internal/lexer"
	"github.com/ekcc-lang/ekcc/internal/parser"
	"github.com/ekcc-lang/ekcc/internal/semantic"
	"github.com/spf13/cobra"
)

// sysArgsAfterDash returns the positional arguments given after a literal
// "--", mirroring ekcc.py's argparse "sysarg" nargs='*' catch-all: these
// become the module's own argv for getarg/getargf, not input to ekcc
// itself. Everything before the dash is the source file argument.
func sysArgsAfterDash(cmd *cobra.Command, args []string) []string {
	dashAt := cmd.ArgsLenAtDash()
	if dashAt < 0 {
		return nil
	}
	return args[dashAt:]
}

// frontEnd runs the lexer, parser, and semantic analyzer over the file at
// path, printing a formatted diagnostic and returning a non-nil error on
// the first failure of any stage.
func frontEnd(path string) (*ast.Program, *semantic.Context, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	source := string(content)

	l := lexer.New(source)
	prog, parseErr := parser.Parse(l)
	if parseErr != nil {
		reportParseError(parseErr, source, path)
		return nil, nil, fmt.Errorf("parsing failed")
	}

	ctx, semErr := semantic.Analyze(prog, source, path)
	if semErr != nil {
		fmt.Fprint(os.Stderr, semErr.Format(true))
		fmt.Fprintln(os.Stderr)
		return nil, nil, fmt.Errorf("semantic analysis failed: %s", semErr.Kind)
	}

	return prog, ctx, nil
}

// reportParseError renders a parser.SyntaxError with the same line/caret
// formatting every other diagnostic kind uses.
func reportParseError(err error, source, file string) {
	syn, ok := err.(*parser.SyntaxError)
	if !ok {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	compilerErr := errors.NewCompilerError(errors.KindSyntaxError, syn.Pos, syn.Message, source, file)
	fmt.Fprint(os.Stderr, compilerErr.Format(true))
	fmt.Fprintln(os.Stderr)
}
