package ast

import (
	"bytes"

	"github.com/ekcc-lang/ekcc/internal/lexer"
)

// BlockStmt owns a list of statements and, implicitly, a local symbol
// scope created by the semantic analyzer.
type BlockStmt struct {
	Token      lexer.Token // the '{' token
	Statements []Statement
}

func (b *BlockStmt) statementNode()       {}
func (b *BlockStmt) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStmt) Pos() lexer.Position  { return b.Token.Pos }
func (b *BlockStmt) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString("  " + s.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// ReturnStmt is `return expr? ;`. Value is nil for a valueless return.
type ReturnStmt struct {
	Token lexer.Token
	Value Expression
}

func (r *ReturnStmt) statementNode()       {}
func (r *ReturnStmt) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStmt) Pos() lexer.Position  { return r.Token.Pos }
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}

// ExprStmt wraps a bare expression used as a statement.
type ExprStmt struct {
	Token      lexer.Token
	Expression Expression
}

func (e *ExprStmt) statementNode()       {}
func (e *ExprStmt) TokenLiteral() string { return e.Token.Literal }
func (e *ExprStmt) Pos() lexer.Position  { return e.Token.Pos }
func (e *ExprStmt) String() string       { return e.Expression.String() + ";" }

// IfStmt is `if (cond) then (else else_)?`.
type IfStmt struct {
	Token     lexer.Token
	Condition Expression
	Then      Statement
	Else      Statement // nil when absent
}

func (i *IfStmt) statementNode()       {}
func (i *IfStmt) TokenLiteral() string { return i.Token.Literal }
func (i *IfStmt) Pos() lexer.Position  { return i.Token.Pos }
func (i *IfStmt) String() string {
	s := "if (" + i.Condition.String() + ") " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Token     lexer.Token
	Condition Expression
	Body      Statement
}

func (w *WhileStmt) statementNode()       {}
func (w *WhileStmt) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStmt) Pos() lexer.Position  { return w.Token.Pos }
func (w *WhileStmt) String() string {
	return "while (" + w.Condition.String() + ") " + w.Body.String()
}

// PrintValueStmt is `print expr;`.
type PrintValueStmt struct {
	Token lexer.Token
	Value Expression
}

func (p *PrintValueStmt) statementNode()       {}
func (p *PrintValueStmt) TokenLiteral() string { return p.Token.Literal }
func (p *PrintValueStmt) Pos() lexer.Position  { return p.Token.Pos }
func (p *PrintValueStmt) String() string       { return "print " + p.Value.String() + ";" }

// PrintStringStmt is `print "literal text";`.
type PrintStringStmt struct {
	Token lexer.Token
	Text  string
}

func (p *PrintStringStmt) statementNode()       {}
func (p *PrintStringStmt) TokenLiteral() string { return p.Token.Literal }
func (p *PrintStringStmt) Pos() lexer.Position  { return p.Token.Pos }
func (p *PrintStringStmt) String() string       { return "print \"" + p.Text + "\";" }

// VarDeclStmt is `type varid = expr;`, including the `ref`/`noalias ref`
// forms whose initializer must be a bare VarRef (checked by the semantic
// analyzer, not the parser).
type VarDeclStmt struct {
	Token lexer.Token
	Decl  *ParamDecl
	Value Expression
}

func (v *VarDeclStmt) statementNode()       {}
func (v *VarDeclStmt) TokenLiteral() string { return v.Token.Literal }
func (v *VarDeclStmt) Pos() lexer.Position  { return v.Token.Pos }
func (v *VarDeclStmt) String() string {
	return v.Decl.String() + " = " + v.Value.String() + ";"
}
