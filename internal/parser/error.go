package parser

import (
	"fmt"

	"github.com/ekcc-lang/ekcc/internal/lexer"
)

// SyntaxError is the single diagnostic a parse failure produces. The
// grammar is fixed and the parser never recovers: the first SyntaxError
// aborts AST construction entirely.
type SyntaxError struct {
	Message string
	Pos     lexer.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Message)
}

func newSyntaxError(pos lexer.Position, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Pos: pos}
}
