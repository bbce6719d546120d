package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ekcc-lang/ekcc/internal/ir"
	"github.com/spf13/cobra"
)

var compileOutput string

var compileCmd = &cobra.Command{
	Use:   "compile <file> [-- sysarg...]",
	Short: "Compile a source file to an LLVM IR module",
	Long: `Run the full front end (lex, parse, analyze) and lower the result
to a textual LLVM IR module via github.com/llir/llvm, writing it to
-o (default: <input with .ek replaced by .ll>).

Arguments after "--" become the module's own argv, consumed by any
getarg/getargf accessor the source program declares.

Examples:
  ekcc compile program.ek
  ekcc compile program.ek -o out.ll -- 3 7`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (default: <input>.ll)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	filename := args[0]
	sysArgs := sysArgsAfterDash(cmd, args)

	prog, ctx, err := frontEnd(filename)
	if err != nil {
		return err
	}

	module, genErr := ir.Generate(prog, ctx, sysArgs)
	if genErr != nil {
		return fmt.Errorf("IR generation failed: %w", genErr)
	}

	outFile := compileOutput
	if outFile == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			outFile = strings.TrimSuffix(filename, ext) + ".ll"
		} else {
			outFile = filename + ".ll"
		}
	}

	if err := os.WriteFile(outFile, []byte(module.String()), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Compiled %s -> %s\n", filename, outFile)
	}
	return nil
}
