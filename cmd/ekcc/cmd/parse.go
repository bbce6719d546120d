package cmd

import (
	"fmt"
	"os"

	"github.com/ekcc-lang/ekcc/internal/lexer"
	"github.com/ekcc-lang/ekcc/internal/parser"
	"github.com/spf13/cobra"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and print its AST",
	Long: `Parse a program and print the resulting AST.

Every AST node renders itself back to text close to source form, so
the printed output is a normalized, re-parenthesized echo of the input
program rather than a tree dump. Casts print as (type)expr rather than
[type] expr, and float literals print in shortest form (2.0 prints as 2).`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", true, "print the parsed program")
}

func runParse(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	prog, parseErr := parser.Parse(lexer.New(source))
	if parseErr != nil {
		reportParseError(parseErr, source, filename)
		return fmt.Errorf("parsing failed")
	}

	if parseDumpAST {
		fmt.Println(prog.String())
	}
	return nil
}
