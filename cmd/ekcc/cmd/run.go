package cmd

import (
	"fmt"
	"os"

	"github.com/ekcc-lang/ekcc/internal/ir"
	"github.com/ekcc-lang/ekcc/internal/jit"
	"github.com/spf13/cobra"
)

var (
	runJIT      bool
	runOptimize bool
)

var runCmd = &cobra.Command{
	Use:   "run <file> [--jit] [-O] [-- sysarg...]",
	Short: "Compile a source file and optionally execute it",
	Long: `Compile a program through the front end and IR generator. With
--jit, the resulting module is executed via internal/jit (which shells
out to the LLVM interpreter lli); without it, run just reports that
the module compiled and prints its IR to stdout.

Examples:
  ekcc run program.ek --jit
  ekcc run program.ek --jit -O -- 3 7`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runJIT, "jit", false, "execute the compiled module via lli")
	runCmd.Flags().BoolVarP(&runOptimize, "optimize", "O", false, "run lli's optimization pipeline before execution")
}

func runRun(cmd *cobra.Command, args []string) error {
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

	if !runJIT {
		fmt.Println(module.String())
		return nil
	}

	result, runErr := jit.Run(module, sysArgs, jit.Options{Optimize: runOptimize})
	if runErr != nil {
		return fmt.Errorf("JIT execution failed: %w", runErr)
	}

	fmt.Print(result.Stdout)
	fmt.Fprint(os.Stderr, result.Stderr)
	fmt.Printf("\nexit: %d\n", result.ExitCode)
	os.Exit(result.ExitCode)
	return nil
}
