package cmd

import (
	"fmt"
	"os"

	"github.com/ekcc-lang/ekcc/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexShowPos  bool
	lexShowType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a source file and print the resulting tokens",
	Long: `Tokenize (lex) a program and print the resulting token stream.

Examples:
  ekcc lex program.ek
  ekcc lex --show-pos --show-type program.ek`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", false, "show token type names")
}

func runLex(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	l := lexer.New(string(content))
	for {
		tok := l.NextToken()
		printToken(tok)
		if tok.Type == lexer.EOF {
			break
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "lex error at %s: %s\n", e.Pos, e.Message)
		}
		return fmt.Errorf("lexing produced %d error(s)", len(errs))
	}
	return nil
}

func printToken(tok lexer.Token) {
	var line string
	if lexShowType {
		line = fmt.Sprintf("[%-10s]", tok.Type)
	}
	if tok.Literal == "" {
		line += fmt.Sprintf(" %s", tok.Type)
	} else {
		line += fmt.Sprintf(" %q", tok.Literal)
	}
	if lexShowPos {
		line += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(line)
}
